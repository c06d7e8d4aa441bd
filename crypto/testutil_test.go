package crypto

import "eosiogo/codec"

func newTestWriter() *codec.Writer        { return codec.NewWriter(128) }
func newTestReader(b []byte) *codec.Reader { return codec.NewReader(b) }
