package trainer

import "github.com/tonecap/tonecap/net/tcn"

// Resume loads previously trained weights from dstmodel when asked to
func Resume(net *tcn.Network, resume *bool, dstmodel *string) {
	if resume != nil && *resume && dstmodel != nil {
		err := net.ReadZlibWeightsFromFile(*dstmodel)
		if err != nil {
			println(err.Error())
		}
	}
}
