package defs

import "entdef/internal/source"

type document struct {
	Class []classDoc `toml:"class" yaml:"class" json:"class"`
}

type classDoc struct {
	Type        string        `toml:"type" yaml:"type" json:"type"`
	Name        string        `toml:"name" yaml:"name" json:"name"`
	Line        int           `toml:"line" yaml:"line" json:"line"`
	Column      int           `toml:"column" yaml:"column" json:"column"`
	Description *string       `toml:"description" yaml:"description" json:"description"`
	Color       []float32     `toml:"color" yaml:"color" json:"color"`
	Size        *sizeDoc      `toml:"size" yaml:"size" json:"size"`
	Model       []string      `toml:"model" yaml:"model" json:"model"`
	Decal       []string      `toml:"decal" yaml:"decal" json:"decal"`
	Properties  []propertyDoc `toml:"properties" yaml:"properties" json:"properties"`
	Base        []string      `toml:"base" yaml:"base" json:"base"`
}

type sizeDoc struct {
	Min []float64 `toml:"min" yaml:"min" json:"min"`
	Max []float64 `toml:"max" yaml:"max" json:"max"`
}

type propertyDoc struct {
	Key      string      `toml:"key" yaml:"key" json:"key"`
	Type     string      `toml:"type" yaml:"type" json:"type"`
	Short    string      `toml:"short" yaml:"short" json:"short"`
	Long     string      `toml:"long" yaml:"long" json:"long"`
	ReadOnly bool        `toml:"read_only" yaml:"read_only" json:"read_only"`
	Default  any         `toml:"default" yaml:"default" json:"default"`
	Choices  []choiceDoc `toml:"choices" yaml:"choices" json:"choices"`
	Options  []optionDoc `toml:"options" yaml:"options" json:"options"`
}

type choiceDoc struct {
	Value       string `toml:"value" yaml:"value" json:"value"`
	Description string `toml:"description" yaml:"description" json:"description"`
}

type optionDoc struct {
	Value   int    `toml:"value" yaml:"value" json:"value"`
	Short   string `toml:"short" yaml:"short" json:"short"`
	Long    string `toml:"long" yaml:"long" json:"long"`
	Default bool   `toml:"default" yaml:"default" json:"default"`
}

// rawClass is a decoded class plus the position the format could recover.
type rawClass struct {
	doc classDoc
	pos source.LineCol
}
