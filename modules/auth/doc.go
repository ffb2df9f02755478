// Package auth signs users in and out against the notes backend and serves
// the login, registration and logout pages.
//
// Login and registration are only complete once the session the backend
// issued has been read back through /accounts/me:
//
//	sess, err := svc.Login(ctx, "ada", "secret")
//	if err != nil {
//		return err
//	}
//	log.Println(sess.User.Username)
//
// Service.Validator adapts the same check for the edge gate.
package auth
