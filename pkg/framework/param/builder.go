package param

// Builder provides a fluent API for creating parameters
type Builder struct {
	param *Parameter
}

// New creates a new parameter builder. The symbol defaults to the name.
func New(id uint32, name string) *Builder {
	return &Builder{
		param: &Parameter{
			ID:           id,
			Name:         name,
			Symbol:       name,
			Min:          0,
			Max:          1,
			DefaultValue: 0,
			Flags:        CanAutomate,
			Storage:      StorageFloat64,
		},
	}
}

// Symbol sets the machine-readable identifier
func (b *Builder) Symbol(symbol string) *Builder {
	b.param.Symbol = symbol
	return b
}

// Range sets the min and max values
func (b *Builder) Range(min, max float64) *Builder {
	b.param.Min = min
	b.param.Max = max
	return b
}

// Default sets the default plain value
func (b *Builder) Default(value float64) *Builder {
	b.param.DefaultValue = value
	return b
}

// Integer marks the parameter integral; the step count covers the range.
func (b *Builder) Integer() *Builder {
	b.param.Flags |= IsInteger
	b.param.StepCount = int32(b.param.Max - b.param.Min)
	return b
}

// Storage sets the native storage type values are quantized to
func (b *Builder) Storage(s Storage) *Builder {
	b.param.Storage = s
	return b
}

// Flags sets parameter flags
func (b *Builder) Flags(flags uint32) *Builder {
	b.param.Flags = flags
	return b
}

// Formatter sets custom value formatting and parsing
func (b *Builder) Formatter(format func(float64) string, parse func(string) (float64, error)) *Builder {
	b.param.formatFunc = format
	b.param.parseFunc = parse
	return b
}

// Build returns the configured parameter initialized to its default
func (b *Builder) Build() *Parameter {
	b.param.Reset()
	return b.param
}
