package render

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Context owns a standalone GPU device for headless presentation. The
// device and queue are exposed through the narrow presenter interfaces.
type Context struct {
	instance hal.Instance
	device   hal.Device

	Device Device
	Queue  Queue
}

// OpenContext acquires a Vulkan adapter and opens a device on it. Discrete
// and integrated GPUs are preferred over software adapters.
func OpenContext(logger *logrus.Logger) (*Context, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, errors.New("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, errors.Wrap(err, "create instance")
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, errors.New("no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, errors.Wrap(err, "open device")
	}

	logger.WithFields(logrus.Fields{
		"adapter": selected.Info.Name,
		"type":    selected.Info.DeviceType,
	}).Info("GPU device opened")

	return &Context{
		instance: instance,
		device:   openDev.Device,
		Device:   WrapHALDevice(openDev.Device),
		Queue:    WrapHALQueue(openDev.Queue),
	}, nil
}

// Close destroys the device and instance. The context must not be used
// afterwards.
func (c *Context) Close() {
	if c.device != nil {
		c.device.Destroy()
		c.device = nil
	}
	if c.instance != nil {
		c.instance.Destroy()
		c.instance = nil
	}
}
