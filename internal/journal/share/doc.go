// Package share dispatches exported pages and documents: into a local
// outbox directory, or to an S3-compatible bucket with a presigned link.
package share
