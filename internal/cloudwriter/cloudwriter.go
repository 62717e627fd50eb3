package cloudwriter

// CloudWriter buffers writes to a single remote object. The object becomes
// visible only after Close uploads it in one shot.
type CloudWriter interface {
	Write(data []byte) (int, error)
	Close() error
}

// CloudWriterFactory creates writers bound to a bucket and object path.
type CloudWriterFactory interface {
	NewWriter(bucket, objectPath string) (CloudWriter, error)
}
