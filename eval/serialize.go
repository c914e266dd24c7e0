package eval

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
)

// magicNumber marks a model file. Little-endian throughout.
const magicNumber uint32 = 0xDEADBEAF

func writeVector(w io.Writer, vec []float32) error {
	if err := binary.Write(w, binary.LittleEndian, int64(len(vec))); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, vec)
}

func readVector(r io.Reader) ([]float32, error) {
	var size int64
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return nil, err
	}
	if size < 0 || size > InputSize*Hidden1Size {
		return nil, fmt.Errorf("eval: implausible vector length %d", size)
	}
	vec := make([]float32, size)
	if err := binary.Read(r, binary.LittleEndian, vec); err != nil {
		return nil, err
	}
	return vec, nil
}

func writeMatrix(w io.Writer, m [][]float32) error {
	if err := binary.Write(w, binary.LittleEndian, int64(len(m))); err != nil {
		return err
	}
	for _, row := range m {
		if err := writeVector(w, row); err != nil {
			return err
		}
	}
	return nil
}

func readMatrix(r io.Reader) ([][]float32, error) {
	var rows int64
	if err := binary.Read(r, binary.LittleEndian, &rows); err != nil {
		return nil, err
	}
	if rows < 0 || rows > Hidden1Size {
		return nil, fmt.Errorf("eval: implausible row count %d", rows)
	}
	m := make([][]float32, rows)
	for i := range m {
		row, err := readVector(r)
		if err != nil {
			return nil, err
		}
		m[i] = row
	}
	return m, nil
}

// SaveModel checkpoints the weights, training metrics and host bookkeeping
// to path. Returns false on any I/O failure.
func (n *Network) SaveModel(path string) bool {
	if err := n.saveModel(path); err != nil {
		log.Printf("eval: save model %s: %v", path, err)
		return false
	}
	return true
}

func (n *Network) saveModel(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if err := binary.Write(w, binary.LittleEndian, magicNumber); err != nil {
		return err
	}
	dims := [4]int32{InputSize, Hidden1Size, Hidden2Size, OutputSize}
	if err := binary.Write(w, binary.LittleEndian, dims); err != nil {
		return err
	}

	if err := writeMatrix(w, n.weights1); err != nil {
		return err
	}
	if err := writeVector(w, n.bias1); err != nil {
		return err
	}
	if err := writeMatrix(w, n.weights2); err != nil {
		return err
	}
	if err := writeVector(w, n.bias2); err != nil {
		return err
	}
	if err := writeMatrix(w, n.weights3); err != nil {
		return err
	}
	if err := writeVector(w, n.bias3); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, n.metrics); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, n.castleStatus); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, n.currentTurnNo); err != nil {
		return err
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// LoadModel replaces the network state with a checkpoint. On any failure --
// missing file, wrong magic, architecture mismatch, short read -- it returns
// false and leaves the current state untouched.
func (n *Network) LoadModel(path string) bool {
	if err := n.loadModel(path); err != nil {
		log.Printf("eval: load model %s: %v", path, err)
		return false
	}
	return true
}

func (n *Network) loadModel(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	r := bufio.NewReader(f)

	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return err
	}
	if magic != magicNumber {
		return fmt.Errorf("not a model file (magic %#x)", magic)
	}

	var dims [4]int32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return err
	}
	if dims != [4]int32{InputSize, Hidden1Size, Hidden2Size, OutputSize} {
		return fmt.Errorf("architecture mismatch %v", dims)
	}

	// Read everything into a staging copy first so a truncated file cannot
	// leave the evaluator half-loaded.
	var loaded Network
	if loaded.weights1, err = readMatrix(r); err != nil {
		return err
	}
	if loaded.bias1, err = readVector(r); err != nil {
		return err
	}
	if loaded.weights2, err = readMatrix(r); err != nil {
		return err
	}
	if loaded.bias2, err = readVector(r); err != nil {
		return err
	}
	if loaded.weights3, err = readMatrix(r); err != nil {
		return err
	}
	if loaded.bias3, err = readVector(r); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &loaded.metrics); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &loaded.castleStatus); err != nil {
		return err
	}
	if err := binary.Read(r, binary.LittleEndian, &loaded.currentTurnNo); err != nil {
		return err
	}

	if len(loaded.weights1) != Hidden1Size || len(loaded.bias1) != Hidden1Size ||
		len(loaded.weights2) != Hidden2Size || len(loaded.bias2) != Hidden2Size ||
		len(loaded.weights3) != OutputSize || len(loaded.bias3) != OutputSize {
		return fmt.Errorf("layer sizes disagree with header")
	}
	for _, row := range loaded.weights1 {
		if len(row) != InputSize {
			return fmt.Errorf("weights1 row length %d", len(row))
		}
	}
	for _, row := range loaded.weights2 {
		if len(row) != Hidden1Size {
			return fmt.Errorf("weights2 row length %d", len(row))
		}
	}
	if len(loaded.weights3[0]) != Hidden2Size {
		return fmt.Errorf("weights3 row length %d", len(loaded.weights3[0]))
	}

	// A resumed run measures progress from where the checkpoint left off.
	loaded.metrics.InitialAverageError = loaded.metrics.RunningAverageError

	*n = loaded
	return nil
}
