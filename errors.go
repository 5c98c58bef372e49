package bucketgo

import "errors"

var (
	// ErrZeroBlockCapacity is returned by New when the configured block
	// capacity is zero or negative.
	ErrZeroBlockCapacity = errors.New("bucketgo: block capacity must be positive")

	// ErrTooManyBlocks is returned by Insert when allocating another block
	// would exceed the limit configured with WithMaxBlocks. The container
	// is left unchanged.
	ErrTooManyBlocks = errors.New("bucketgo: max blocks exceeded")
)
