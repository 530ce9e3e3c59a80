// Package pointfile implements the append-only sample file used by offline
// scene builders: a flat, headerless array of scene.Point records. It has no
// relationship to the octree node store (see asset/scene); this is strictly
// the intermediate format a point-cloud-to-octree compiler reads and writes.
package pointfile

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/achilleasa/voxtrace/log"
	"github.com/achilleasa/voxtrace/scene"
)

var logger = log.New("pointfile")

// bufferSize mirrors the original pointfile's fixed 65536-record write
// buffer: points are batched and flushed with a single write(2) rather than
// one syscall per point.
const bufferSize = 1 << 16

// Sink is a buffered, append-only writer of scene.Point records. The zero
// value is not usable; construct one with Create.
type Sink struct {
	f      *os.File
	buf    []scene.Point
	n      int
	closed bool
}

// Create truncates (or creates) path and returns a Sink ready to accept
// points.
func Create(path string) (*Sink, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("pointfile: create %s: %w", path, err)
	}
	return &Sink{f: f, buf: make([]scene.Point, bufferSize)}, nil
}

// Add appends a point to the sink, flushing the buffer first if it is full.
func (s *Sink) Add(p scene.Point) error {
	if s.n >= len(s.buf) {
		if err := s.flush(); err != nil {
			return err
		}
	}
	s.buf[s.n] = p
	s.n++
	return nil
}

func (s *Sink) flush() error {
	if s.n == 0 {
		return nil
	}
	raw := make([]byte, s.n*scene.PointByteSize)
	for i := 0; i < s.n; i++ {
		encode(raw[i*scene.PointByteSize:], s.buf[i])
	}
	if _, err := s.f.Write(raw); err != nil {
		return fmt.Errorf("pointfile: write: %w", err)
	}
	logger.Debugf("flushed %d points", s.n)
	s.n = 0
	return nil
}

// Close flushes any buffered points and closes the underlying file.
func (s *Sink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.flush(); err != nil {
		s.f.Close()
		return err
	}
	return s.f.Close()
}

func encode(dst []byte, p scene.Point) {
	binary.LittleEndian.PutUint32(dst[0:4], uint32(p.X))
	binary.LittleEndian.PutUint32(dst[4:8], uint32(p.Y))
	binary.LittleEndian.PutUint32(dst[8:12], uint32(p.Z))
	binary.LittleEndian.PutUint32(dst[12:16], p.Color)
}

func decode(src []byte) scene.Point {
	return scene.Point{
		X:     int32(binary.LittleEndian.Uint32(src[0:4])),
		Y:     int32(binary.LittleEndian.Uint32(src[4:8])),
		Z:     int32(binary.LittleEndian.Uint32(src[8:12])),
		Color: binary.LittleEndian.Uint32(src[12:16]),
	}
}
