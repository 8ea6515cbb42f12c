package internal

// DoneChan is closed when a background task has fully terminated.
type DoneChan chan struct{}

// DoneFunc initiates shutdown and returns the channel to wait on.
type DoneFunc func() DoneChan
