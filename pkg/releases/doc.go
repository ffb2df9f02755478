// Package releases finds the download links of the newest macOS desktop
// client, either from the notes backend or straight from an S3 bucket.
package releases
