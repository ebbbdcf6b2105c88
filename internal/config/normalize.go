package config

import "strings"

func (c *Config) normalize() {
	def := Default()

	c.Conversion.TitleURLPrefix = strings.TrimSpace(c.Conversion.TitleURLPrefix)
	if c.Conversion.TitleURLPrefix == "" {
		c.Conversion.TitleURLPrefix = def.Conversion.TitleURLPrefix
	}
	if c.Conversion.Workers == 0 {
		c.Conversion.Workers = def.Conversion.Workers
	}
	if c.Conversion.MaxYearGap == 0 {
		c.Conversion.MaxYearGap = def.Conversion.MaxYearGap
	}

	c.Export.Style = strings.ToLower(strings.TrimSpace(c.Export.Style))
	if c.Export.Style == "" {
		c.Export.Style = def.Export.Style
	}
	c.Export.Format = strings.ToLower(strings.TrimSpace(c.Export.Format))
	if c.Export.Format == "" {
		c.Export.Format = def.Export.Format
	}
	c.Export.Fields = strings.TrimSpace(c.Export.Fields)

	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}
