package qrcode

import (
	"errors"
	"fmt"
	"sort"

	skipqrcode "github.com/skip2/go-qrcode"
	"rsc.io/qr"
)

// Engine names accepted by EngineByName.
const (
	EngineNative = "native"
	EngineSkip2  = "skip2"
	EngineRSC    = "rsc"
)

// Engine turns a payload into a symbol matrix.
type Engine interface {
	Name() string
	Encode(payload string, level Level) (*Matrix, error)
}

var engines = map[string]func() Engine{
	EngineNative: Native,
	EngineSkip2:  Skip2,
	EngineRSC:    RSC,
}

// EngineByName returns the engine registered under name. An empty name
// selects the native engine.
func EngineByName(name string) (Engine, error) {
	if name == "" {
		return Native(), nil
	}
	factory, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
	return factory(), nil
}

// Engines lists the registered engine names in sorted order.
func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type nativeEngine struct{}

// Native returns the engine backed by Encode.
func Native() Engine { return nativeEngine{} }

func (nativeEngine) Name() string { return EngineNative }

func (nativeEngine) Encode(payload string, level Level) (*Matrix, error) {
	return Encode(payload, level)
}

type skip2Engine struct{}

// Skip2 returns an engine backed by github.com/skip2/go-qrcode. The library
// picks the most compact data mode on its own, so it may choose a smaller
// version than the native encoder for numeric or alphanumeric payloads.
func Skip2() Engine { return skip2Engine{} }

func (skip2Engine) Name() string { return EngineSkip2 }

var skip2Levels = map[Level]skipqrcode.RecoveryLevel{
	Low:      skipqrcode.Low,
	Medium:   skipqrcode.Medium,
	Quartile: skipqrcode.High,
	High:     skipqrcode.Highest,
}

func (skip2Engine) Encode(payload string, level Level) (*Matrix, error) {
	if err := checkInput(payload, level); err != nil {
		return nil, err
	}
	q, err := skipqrcode.New(payload, skip2Levels[level])
	if err != nil {
		return nil, classifyEngineError(payload, level, err)
	}
	bitmap, err := stripQuietZone(q.Bitmap(), q.VersionNumber)
	if err != nil {
		return nil, errors.Join(ErrEncodingFault, err)
	}
	m, err := NewMatrix(bitmap, level)
	if err != nil {
		return nil, errors.Join(ErrEncodingFault, err)
	}
	return m, nil
}

type rscEngine struct{}

// RSC returns an engine backed by rsc.io/qr.
func RSC() Engine { return rscEngine{} }

func (rscEngine) Name() string { return EngineRSC }

var rscLevels = map[Level]qr.Level{
	Low:      qr.L,
	Medium:   qr.M,
	Quartile: qr.Q,
	High:     qr.H,
}

func (rscEngine) Encode(payload string, level Level) (*Matrix, error) {
	if err := checkInput(payload, level); err != nil {
		return nil, err
	}
	code, err := qr.Encode(payload, rscLevels[level])
	if err != nil {
		return nil, classifyEngineError(payload, level, err)
	}
	bitmap := make([][]bool, code.Size)
	for y := range bitmap {
		bitmap[y] = make([]bool, code.Size)
		for x := range bitmap[y] {
			bitmap[y][x] = code.Black(x, y)
		}
	}
	m, err := NewMatrix(bitmap, level)
	if err != nil {
		return nil, errors.Join(ErrEncodingFault, err)
	}
	return m, nil
}

func checkInput(payload string, level Level) error {
	if payload == "" {
		return ErrInvalidPayload
	}
	if !level.valid() {
		return errors.Join(ErrEncodingFault, ErrInvalidLevel)
	}
	return nil
}

// classifyEngineError maps a library failure onto the package sentinels by
// measuring the payload against the native capacity rather than inspecting
// the library's error text.
func classifyEngineError(payload string, level Level, err error) error {
	if !newSegment(payload).fits(maxVersion, level) {
		return errors.Join(ErrCapacityExceeded, err)
	}
	return errors.Join(ErrEncodingFault, err)
}

// stripQuietZone crops the border a library adds around a symbol of version.
func stripQuietZone(bitmap [][]bool, version int) ([][]bool, error) {
	size := sizeForVersion(version)
	border := (len(bitmap) - size) / 2
	if border < 0 || len(bitmap) != size+2*border {
		return nil, fmt.Errorf("%w: %d rows for version %d", ErrInvalidMatrix, len(bitmap), version)
	}
	out := make([][]bool, size)
	for y := range out {
		row := bitmap[y+border]
		if len(row) != size+2*border {
			return nil, fmt.Errorf("%w: row %d has %d modules", ErrInvalidMatrix, y+border, len(row))
		}
		out[y] = row[border : border+size]
	}
	return out, nil
}
