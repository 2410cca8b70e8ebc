// Package export publishes crawl outputs.
//
// Uploader copies run files to object storage under
// <prefix>/<expansion>/<run-date>/<file>. WriteReviewWorkbook renders
// suspicious price rows into an xlsx sheet for manual review.
package export
