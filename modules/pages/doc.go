// Package pages serves the server-rendered site: the landing page, the
// dashboard and the public tenant pages that the edge gate rewrites
// username subdomains to.
//
// Dashboard pages load the signed-in user and their data from the backend.
// A rejected session sends the visitor to /login with a returnUrl; any
// other backend failure is logged and shown as a generic message. Tenant
// pages read through Public, a shared cache in front of the backend.
package pages
