package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"
)

// ColorMap maps a liturgical color name to the value shown on the page.
type ColorMap map[string]string

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// DefaultColorMap returns the liturgical colors used when no file is configured.
func DefaultColorMap() ColorMap {
	return ColorMap{
		"White":  "#FFFFFF",
		"Green":  "#228B22",
		"Purple": "#663399",
		"Pink":   "#FFC0CB",
		"Red":    "#DC143C",
	}
}

// LoadColorMap reads a YAML mapping of color names to hex values, e.g.
//
//	White: "#FFFFFF"
//	Green: "#228B22"
func LoadColorMap(path string) (ColorMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read color map %s: %w", path, err)
	}
	var cm ColorMap
	if err := yaml.Unmarshal(data, &cm); err != nil {
		return nil, fmt.Errorf("parse color map %s: %w", path, err)
	}
	return cm, nil
}

// Validate checks every entry is a hex color.
func (c ColorMap) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("color map cannot be empty")
	}
	for _, name := range c.Names() {
		if !hexColor.MatchString(c[name]) {
			return fmt.Errorf("invalid color '%s' for %s: must be #RGB or #RRGGBB", c[name], name)
		}
	}
	return nil
}

// Names returns the color names in sorted order.
func (c ColorMap) Names() []string {
	names := make([]string, 0, len(c))
	for k := range c {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the display value for a color name.
func (c ColorMap) Lookup(name string) (string, bool) {
	v, ok := c[name]
	return v, ok
}
