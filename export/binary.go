package export

import "encoding/binary"
import "errors"
import "io"
import "math"
import "os"

import "github.com/tonecap/tonecap/net/tcn"

// binary weight blob: magic, five uint32 header words, weight count, then
// raw float32 weights, all little endian
var binaryMagic = [4]byte{'T', 'C', 'F', '1'}

// WriteBinary serializes the model into the flat binary inference format
func WriteBinary(w io.Writer, n *tcn.Network, rate int) error {
	_, err := w.Write(binaryMagic[:])
	if err != nil {
		return err
	}
	params := n.Parameters()
	var count int
	for _, p := range params {
		count += len(p.Data)
	}
	header := []uint32{
		uint32(n.Channels()),
		uint32(n.Blocks()),
		uint32(n.Kernel()),
		uint32(n.Growth()),
		uint32(rate),
		uint32(count),
	}
	for _, v := range header {
		err = binary.Write(w, binary.LittleEndian, v)
		if err != nil {
			return err
		}
	}
	buf := make([]byte, 4)
	for _, p := range params {
		for _, v := range p.Data {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			_, err = w.Write(buf)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteBinaryToFile writes the flat binary inference format to a file
func WriteBinaryToFile(name string, n *tcn.Network, rate int) error {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	err = WriteBinary(file, n, rate)
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// ReadBinary reconstructs a model and its sample rate from the binary format
func ReadBinary(r io.Reader) (*tcn.Network, int, error) {
	var magic [4]byte
	_, err := io.ReadFull(r, magic[:])
	if err != nil {
		return nil, 0, err
	}
	if magic != binaryMagic {
		return nil, 0, errors.New("export: not a tonecap binary model")
	}
	var header [6]uint32
	for i := range header {
		err = binary.Read(r, binary.LittleEndian, &header[i])
		if err != nil {
			return nil, 0, err
		}
	}
	n, err := tcn.New(int(header[0]), int(header[1]), int(header[2]), int(header[3]))
	if err != nil {
		return nil, 0, err
	}
	params := n.Parameters()
	var count int
	for _, p := range params {
		count += len(p.Data)
	}
	if int(header[5]) != count {
		return nil, 0, errors.New("export: weight count does not match architecture")
	}
	buf := make([]byte, 4)
	for _, p := range params {
		for i := range p.Data {
			_, err = io.ReadFull(r, buf)
			if err != nil {
				return nil, 0, err
			}
			p.Data[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf))
		}
	}
	return n, int(header[4]), nil
}

// ReadBinaryFromFile reconstructs a model and its sample rate from a file
func ReadBinaryFromFile(name string) (*tcn.Network, int, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, 0, err
	}
	defer file.Close()
	return ReadBinary(file)
}
