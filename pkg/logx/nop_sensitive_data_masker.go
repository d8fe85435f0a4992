package logx

// NopSensitiveDataMasker passes payloads through unchanged. It is the
// default masker of the HTTP logging round tripper.
type NopSensitiveDataMasker struct{}

func NewNopSensitiveDataMasker() NopSensitiveDataMasker {
	return NopSensitiveDataMasker{}
}

func (NopSensitiveDataMasker) Mask(input []byte) []byte {
	return input
}
