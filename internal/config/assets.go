package config

import "gopkg.in/yaml.v3"

// AssetRef points at a site asset (image, svg) by site-relative path or URL.
type AssetRef struct {
	Src string `yaml:"src"`
	Alt string `yaml:"alt,omitempty"`
}

// IsZero reports whether no asset is referenced.
func (a AssetRef) IsZero() bool { return a.Src == "" }

// UnmarshalYAML accepts either a bare path ("img/infra.svg") or a mapping.
func (a *AssetRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		a.Src = value.Value
		a.Alt = ""
		return nil
	}
	type plain AssetRef
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*a = AssetRef(p)
	return nil
}

// UnmarshalYAML accepts either a bare capability name or a {name, options} mapping.
func (d *Descriptor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		d.Name = value.Value
		d.Options = nil
		return nil
	}
	type plain Descriptor
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*d = Descriptor(p)
	return nil
}
