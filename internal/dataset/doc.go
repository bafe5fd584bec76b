// Package dataset materializes the labeled eye-image dataset.
//
// Materialize runs the whole pipeline in one synchronous pass: prepare the
// four bucket directories, extract the archive into a scratch directory,
// collect and label image files, split them into train and validation
// subsets with a fixed seed, copy each file into its bucket, release the
// scratch directory, and count the buckets back from disk.
//
// Failures carry one of the exported markers (ErrNotFound, ErrEmptyDataset,
// ErrLocked, ErrIO) so callers can classify them with errors.Is. A failure
// during the copy phase leaves the buckets partially populated; there is no
// rollback.
package dataset
