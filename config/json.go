// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"reflect"
	"unsafe"

	"github.com/SoftbearStudios/noisefield/interp"
	"github.com/SoftbearStudios/noisefield/noise/voronoi"
	jsoniter "github.com/json-iterator/go"
)

// JSON encodes enumerations by name. Registration runs before freezing.
var JSON = func() jsoniter.API {
	neverEmpty := func(pointer unsafe.Pointer) bool { return false }

	// Encoders
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(Kind(0)).String(), encodeKind, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(interp.Kind(0)).String(), encodeInterp, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(voronoi.DistanceFunction(0)).String(), encodeDistance, neverEmpty)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(voronoi.CombineFunction(0)).String(), encodeCombine, neverEmpty)

	// Decoders
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(Kind(0)).String(), decodeKind)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(interp.Kind(0)).String(), decodeInterp)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(voronoi.DistanceFunction(0)).String(), decodeDistance)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(voronoi.CombineFunction(0)).String(), decodeCombine)

	return jsoniter.Config{
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

func encodeKind(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*(*Kind)(ptr)).String())
}

func encodeInterp(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*(*interp.Kind)(ptr)).String())
}

func encodeDistance(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*(*voronoi.DistanceFunction)(ptr)).String())
}

func encodeCombine(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*(*voronoi.CombineFunction)(ptr)).String())
}

func decodeKind(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	k, err := ParseKind(iter.ReadString())
	if err != nil {
		iter.ReportError("decode kind", err.Error())
		return
	}
	*(*Kind)(ptr) = k
}

func decodeInterp(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	k, err := interp.ParseKind(iter.ReadString())
	if err != nil {
		iter.ReportError("decode interp", err.Error())
		return
	}
	*(*interp.Kind)(ptr) = k
}

func decodeDistance(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	fn, err := voronoi.ParseDistanceFunction(iter.ReadString())
	if err != nil {
		iter.ReportError("decode distance", err.Error())
		return
	}
	*(*voronoi.DistanceFunction)(ptr) = fn
}

func decodeCombine(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	fn, err := voronoi.ParseCombineFunction(iter.ReadString())
	if err != nil {
		iter.ReportError("decode combine", err.Error())
		return
	}
	*(*voronoi.CombineFunction)(ptr) = fn
}
