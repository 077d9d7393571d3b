//go:build !linux

package hal

func newMmapBackend(cfg DeviceConfig) Backend  { return unsupportedBackend{} }
func newFbdevBackend(cfg DeviceConfig) Backend { return unsupportedBackend{} }

type unsupportedBackend struct{}

func (unsupportedBackend) Init() (Framebuffer, error) { return nil, ErrNotImplemented }
func (unsupportedBackend) Flip() (Framebuffer, error) { return nil, ErrNotImplemented }
func (unsupportedBackend) Blank(bool) error           { return ErrNotImplemented }
func (unsupportedBackend) Exit() error                { return nil }
