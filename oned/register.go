package oned

import "github.com/ericlevine/upcean"

func init() {
	upcean.RegisterWriter(upcean.FormatEAN13, func() upcean.Writer { return NewEAN13Writer() })
	upcean.RegisterWriter(upcean.FormatEAN8, func() upcean.Writer { return NewEAN8Writer() })
	upcean.RegisterWriter(upcean.FormatUPCA, func() upcean.Writer { return NewUPCAWriter() })
	upcean.RegisterWriter(upcean.FormatUPCE, func() upcean.Writer { return NewUPCEWriter() })
}
