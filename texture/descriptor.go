package texture

import "github.com/gogpu/gputypes"

// FromDescriptor converts a WebGPU sampler descriptor into a Config.
//
// Only the U address mode is used; the sampler addresses both axes the same
// way. WebGPU has no clamp-to-border mode, so undefined modes fall back to
// clamp-to-edge. A MaxAnisotropy above 1 selects FilterAnisotropic.
func FromDescriptor(d gputypes.SamplerDescriptor) Config {
	c := Config{
		Address: AddressClampToEdge,
		Filter:  FilterNearest,
		Mip:     MipNone,
	}

	switch d.AddressModeU {
	case gputypes.AddressModeRepeat:
		c.Address = AddressRepeat
	case gputypes.AddressModeMirrorRepeat:
		c.Address = AddressMirroredRepeat
	}

	switch {
	case d.MaxAnisotropy > 1:
		c.Filter = FilterAnisotropic
		c.MaxAnisotropy = int(d.MaxAnisotropy)
	case d.MinFilter == gputypes.FilterModeLinear:
		c.Filter = FilterBilinear
	}

	switch d.MipmapFilter {
	case gputypes.MipmapFilterModeNearest:
		c.Mip = MipNearest
	case gputypes.MipmapFilterModeLinear:
		c.Mip = MipLinear
	}
	return c
}
