package param

// Knob parameter helpers. Ranges follow the MIDI data model: channels are
// 1-based, controller numbers and values are 7-bit.

// ChannelParameter creates a MIDI channel selector (1-16).
func ChannelParameter(id uint32, name string) *Builder {
	return New(id, name).
		Range(1, 16).
		Default(1).
		Integer().
		Storage(StorageUint8).
		Formatter(ChannelFormatter, ChannelParser)
}

// ControllerParameter creates a CC number selector (1-127).
func ControllerParameter(id uint32, name string, defaultCC float64) *Builder {
	return New(id, name).
		Range(1, 127).
		Default(defaultCC).
		Integer().
		Storage(StorageUint8).
		Formatter(ControllerFormatter, ControllerParser)
}

// ControlValueParameter creates an absolute 7-bit CC value (0-127).
func ControlValueParameter(id uint32, name string) *Builder {
	return New(id, name).
		Range(0, 127).
		Default(0).
		Integer().
		Storage(StorageInt16)
}

// SensitivityParameter creates a continuous multiplier (0.1-5.0).
func SensitivityParameter(id uint32, name string) *Builder {
	return New(id, name).
		Range(0.1, 5.0).
		Default(1.0).
		Storage(StorageFloat32).
		Formatter(SensitivityFormatter, SensitivityParser)
}

// SensitivityStepsParameter creates an integer multiplier (1-10).
func SensitivityStepsParameter(id uint32, name string) *Builder {
	return New(id, name).
		Range(1, 10).
		Default(1).
		Integer().
		Storage(StorageUint8).
		Formatter(SensitivityFormatter, SensitivityParser)
}
