// Package datasets implements the clean/processed example-pair dataset type
package datasets

import "errors"
import "fmt"
import "math/rand"

import "github.com/tonecap/tonecap/wavio"

// Pair is an aligned clean/processed recording of the same performance
type Pair struct {
	Clean  []float32
	Target []float32
	Rate   int
}

// Segment is one training window. Input carries extra left context so the
// network warms up its receptive field; the first Skip output samples fall
// inside that context and are excluded from the loss.
type Segment struct {
	Input  []float32
	Target []float32
	Skip   int
}

// NewPair builds a pair from two clips, truncating both to the shorter one
func NewPair(clean, target []float32, rate int) (*Pair, error) {
	if len(clean) == 0 || len(target) == 0 {
		return nil, errors.New("datasets: empty clip")
	}
	n := len(clean)
	if len(target) < n {
		n = len(target)
	}
	return &Pair{Clean: clean[:n], Target: target[:n], Rate: rate}, nil
}

// LoadPair loads the clean and processed WAV files of one example pair
func LoadPair(cleanName, targetName string) (*Pair, error) {
	clean, cleanRate, err := wavio.Load(cleanName)
	if err != nil {
		return nil, err
	}
	target, targetRate, err := wavio.Load(targetName)
	if err != nil {
		return nil, err
	}
	if cleanRate != targetRate {
		return nil, fmt.Errorf("datasets: sample rate mismatch: %d vs %d", cleanRate, targetRate)
	}
	return NewPair(clean, target, cleanRate)
}

// Len reports the pair length in samples
func (p *Pair) Len() int {
	return len(p.Clean)
}

// Seconds reports the pair length in seconds
func (p *Pair) Seconds() float64 {
	return float64(p.Len()) / float64(p.Rate)
}

// Split cuts a validation tail off the pair by fraction
func (p *Pair) Split(fraction float64) (train, valid *Pair) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 0.9 {
		fraction = 0.9
	}
	cut := p.Len() - int(float64(p.Len())*fraction)
	if cut < 1 {
		cut = 1
	}
	train = &Pair{Clean: p.Clean[:cut], Target: p.Target[:cut], Rate: p.Rate}
	valid = &Pair{Clean: p.Clean[cut:], Target: p.Target[cut:], Rate: p.Rate}
	return
}

// Windows slices the pair into window sized training segments, each with up
// to context samples of left context. A clip shorter than one window
// becomes a single whole-clip segment; the short tail is dropped.
func (p *Pair) Windows(window, context int) (segs []Segment) {
	if window < 1 || p.Len() == 0 {
		return nil
	}
	if p.Len() < window {
		return []Segment{{Input: p.Clean, Target: p.Target}}
	}
	for start := 0; start+window <= p.Len(); start += window {
		from := start - context
		if from < 0 {
			from = 0
		}
		segs = append(segs, Segment{
			Input:  p.Clean[from : start+window],
			Target: p.Target[from : start+window],
			Skip:   start - from,
		})
	}
	return
}

// Shuffle permutes the segments in place
func Shuffle(segs []Segment) {
	rand.Shuffle(len(segs), func(i, j int) { segs[i], segs[j] = segs[j], segs[i] })
}
