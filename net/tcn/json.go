package tcn

import "compress/zlib"
import "encoding/json"
import "errors"
import "io"
import "os"

type snapshot struct {
	Channels int         `json:"channels"`
	Blocks   int         `json:"blocks"`
	Kernel   int         `json:"kernel"`
	Growth   int         `json:"growth"`
	Weights  [][]float32 `json:"weights"`
}

// WriteZlibWeightsToFile writes model weights to a zlib compressed json file
func (n *Network) WriteZlibWeightsToFile(name string) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = n.WriteZlibWeights(file)
	file.Close()
	return err
}

// WriteZlibWeights writes model weights to a writer
func (n *Network) WriteZlibWeights(w io.Writer) error {
	zw := zlib.NewWriter(w)
	var snap = snapshot{
		Channels: n.channels,
		Blocks:   len(n.blocks),
		Kernel:   n.kernel,
		Growth:   n.growth,
	}
	for _, p := range n.Parameters() {
		snap.Weights = append(snap.Weights, p.Data)
	}
	err := json.NewEncoder(zw).Encode(&snap)
	if err != nil {
		return err
	}
	return zw.Close()
}

// LoadZlibWeightsFromFile reads a weight file and builds the network it
// describes
func LoadZlibWeightsFromFile(name string) (*Network, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	zr, err := zlib.NewReader(file)
	if err != nil {
		return nil, err
	}
	var snap snapshot
	err = json.NewDecoder(zr).Decode(&snap)
	if err != nil {
		return nil, err
	}
	n, err := New(snap.Channels, snap.Blocks, snap.Kernel, snap.Growth)
	if err != nil {
		return nil, err
	}
	params := n.Parameters()
	if len(snap.Weights) != len(params) {
		return nil, errors.New("tcn: weight file parameter count does not match architecture")
	}
	for i, p := range params {
		if len(snap.Weights[i]) != len(p.Data) {
			return nil, errors.New("tcn: weight file parameter size does not match architecture")
		}
		copy(p.Data, snap.Weights[i])
	}
	return n, zr.Close()
}

// ReadZlibWeightsFromFile reads model weights from a zlib compressed json file
func (n *Network) ReadZlibWeightsFromFile(name string) error {
	file, err := os.Open(name)
	if err != nil {
		return err
	}
	err = n.ReadZlibWeights(file)
	file.Close()
	return err
}

// ReadZlibWeights reads model weights from a reader into a network of the
// same architecture
func (n *Network) ReadZlibWeights(r io.Reader) error {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return err
	}
	var snap snapshot
	err = json.NewDecoder(zr).Decode(&snap)
	if err != nil {
		return err
	}
	if snap.Channels != n.channels || snap.Blocks != len(n.blocks) ||
		snap.Kernel != n.kernel || snap.Growth != n.growth {
		return errors.New("tcn: weight file architecture does not match network")
	}
	params := n.Parameters()
	if len(snap.Weights) != len(params) {
		return errors.New("tcn: weight file parameter count does not match network")
	}
	for i, p := range params {
		if len(snap.Weights[i]) != len(p.Data) {
			return errors.New("tcn: weight file parameter size does not match network")
		}
		copy(p.Data, snap.Weights[i])
	}
	return zr.Close()
}
