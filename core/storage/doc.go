// Package storage archives results workbooks to S3-compatible object
// storage.
//
// Bulk validation runs are audited: the workbook a run produces is the only
// record of which domains were deleted or resubmitted and why. When archiving
// is enabled, the finished workbook is uploaded under a run-scoped key
// (date + run ID) so it can be retrieved long after the local file is gone.
//
// The Client interface wraps the minio client with just the operations the
// archiver needs, which keeps tests free of a live object store.
package storage
