package section

import "github.com/gogpu/brig/format"

// DecodeDirective decodes the directive at off. It fails when the header is
// out of bounds, the kind is unknown, or the declared size is below the
// kind's minimum. Variable-length payloads are truncated to the record.
//
//nolint:funlen // one case per directive kind
func DecodeDirective(v View, off uint32) (format.Directive, error) {
	size, raw, err := v.Check(off)
	if err != nil {
		return nil, err
	}
	kind := format.DirectiveKind(raw)
	if !kind.Valid() {
		return nil, newError(v.id, off, ErrUnknownKind)
	}
	if size < kind.MinSize() {
		return nil, newError(v.id, off, ErrTooSmall)
	}
	h := format.DirectiveHeader{Offset: off, Size: size, Kind: kind}
	end := off + uint32(size)

	switch kind {
	case format.DirFunction, format.DirKernel:
		return &format.MethodDirective{
			DirectiveHeader: h,
			CCode:           v.U32(off + 4),
			SName:           v.U32(off + 8),
			InParamCount:    v.U32(off + 12),
			FirstScoped:     v.U32(off + 16),
			OperationCount:  v.U32(off + 20),
			NextDirective:   v.U32(off + 24),
			Attribute:       format.Attribute(v.U16(off + 28)),
			Reserved:        v.U16(off + 30),
			OutParamCount:   v.U32(off + 32),
			FirstInParam:    v.U32(off + 36),
		}, nil

	case format.DirSymbol:
		return &format.SymbolDirective{
			DirectiveHeader: h,
			S:               symbolCommon(v, off),
			Init:            v.U32(off + 32),
			Reserved:        v.U32(off + 36),
		}, nil

	case format.DirImage:
		return &format.ImageDirective{
			DirectiveHeader: h,
			S:               symbolCommon(v, off),
			Width:           v.U32(off + 32),
			Height:          v.U32(off + 36),
			Depth:           v.U32(off + 40),
			Array:           v.U32(off + 44),
			Order:           format.ImageOrder(v.U32(off + 48)),
			Format:          format.ImageFormat(v.U32(off + 52)),
		}, nil

	case format.DirSampler:
		return &format.SamplerDirective{
			DirectiveHeader: h,
			S:               symbolCommon(v, off),
			Valid:           v.U8(off + 32),
			Normalized:      v.U8(off + 33),
			Filter:          format.SamplerFilter(v.U8(off + 34)),
			BoundaryU:       format.SamplerBoundary(v.U8(off + 35)),
			BoundaryV:       format.SamplerBoundary(v.U8(off + 36)),
			BoundaryW:       format.SamplerBoundary(v.U8(off + 37)),
			Reserved:        v.U16(off + 38),
		}, nil

	case format.DirLabel:
		return &format.LabelDirective{DirectiveHeader: h, CCode: v.U32(off + 4), SName: v.U32(off + 8)}, nil

	case format.DirLabelList:
		count := v.U32(off + 12)
		return &format.LabelListDirective{
			DirectiveHeader: h,
			CCode:           v.U32(off + 4),
			Label:           v.U32(off + 8),
			ElementCount:    count,
			Labels:          offsets(v, off+format.LabelListEntries, end, count),
		}, nil

	case format.DirVersion:
		return &format.VersionDirective{
			DirectiveHeader: h,
			CCode:           v.U32(off + 4),
			Major:           v.U16(off + 8),
			Minor:           v.U16(off + 10),
			Machine:         format.Machine(v.U8(off + 12)),
			Profile:         format.Profile(v.U8(off + 13)),
			Ftz:             format.Ftz(v.U8(off + 14)),
			Reserved:        v.U8(off + 15),
		}, nil

	case format.DirSignature:
		d := &format.SignatureDirective{
			DirectiveHeader: h,
			CCode:           v.U32(off + 4),
			SName:           v.U32(off + 8),
			FbarCount:       v.U16(off + 12),
			Reserved:        v.U16(off + 14),
			OutCount:        v.U32(off + 16),
			InCount:         v.U32(off + 20),
		}
		want := uint64(d.OutCount) + uint64(d.InCount)
		for p := off + format.SignatureEntries; p+format.SignatureEntrySize <= end && uint64(len(d.Types)) < want; p += format.SignatureEntrySize {
			d.Types = append(d.Types, format.SignatureEntry{
				Type:   format.DataType(v.U16(p)),
				Align:  v.U8(p + 2),
				HasDim: v.U8(p + 3),
				Dim:    v.U32(p + 4),
			})
		}
		return d, nil

	case format.DirFile:
		return &format.FileDirective{
			DirectiveHeader: h,
			CCode:           v.U32(off + 4),
			FileID:          v.U32(off + 8),
			SFilename:       v.U32(off + 12),
		}, nil

	case format.DirComment, format.DirPragma, format.DirExtension, format.DirBlockStart:
		return &format.NameDirective{DirectiveHeader: h, CCode: v.U32(off + 4), SName: v.U32(off + 8)}, nil

	case format.DirLoc:
		return &format.LocDirective{
			DirectiveHeader: h,
			CCode:           v.U32(off + 4),
			SourceFile:      v.U32(off + 8),
			Line:            v.U32(off + 12),
			Column:          v.U32(off + 16),
		}, nil

	case format.DirInit:
		return &format.InitDirective{
			DirectiveHeader: h,
			CCode:           v.U32(off + 4),
			ElementCount:    v.U32(off + 8),
			Type:            format.DataType(v.U16(off + 12)),
			Reserved:        v.U16(off + 14),
			Data:            v.data[off+format.InitData : end],
		}, nil

	case format.DirLabelInit:
		count := v.U32(off + 8)
		return &format.LabelInitDirective{
			DirectiveHeader: h,
			CCode:           v.U32(off + 4),
			ElementCount:    count,
			SName:           v.U32(off + 12),
			Labels:          offsets(v, off+16, end, count),
		}, nil

	case format.DirControl:
		return &format.ControlDirective{
			DirectiveHeader: h,
			CCode:           v.U32(off + 4),
			ControlType:     format.ControlType(v.U32(off + 8)),
			Values:          [3]uint32{v.U32(off + 12), v.U32(off + 16), v.U32(off + 20)},
		}, nil

	case format.DirArgStart, format.DirArgEnd:
		return &format.ArgScopeDirective{DirectiveHeader: h, CCode: v.U32(off + 4)}, nil

	case format.DirBlockNumeric:
		return &format.BlockNumericDirective{
			DirectiveHeader: h,
			Type:            format.DataType(v.U16(off + 4)),
			ElementCount:    v.U16(off + 6),
			Data:            v.data[off+format.BlockNumericData : end],
		}, nil

	case format.DirBlockString:
		return &format.BlockStringDirective{DirectiveHeader: h, SName: v.U32(off + 4)}, nil

	case format.DirBlockEnd, format.DirPad:
		return &format.EmptyDirective{DirectiveHeader: h}, nil
	}
	return nil, newError(v.id, off, ErrUnknownKind)
}

func symbolCommon(v View, off uint32) format.SymbolCommon {
	return format.SymbolCommon{
		CCode:        v.U32(off + 4),
		StorageClass: format.StorageClass(v.U32(off + 8)),
		Attribute:    format.Attribute(v.U16(off + 12)),
		Reserved:     v.U16(off + 14),
		Modifier:     format.SymbolModifier(v.U32(off + 16)),
		Dim:          v.U32(off + 20),
		SName:        v.U32(off + 24),
		Type:         format.DataType(v.U16(off + 28)),
		Align:        v.U16(off + 30),
	}
}

// offsets reads up to count uint32 entries starting at p without crossing end.
func offsets(v View, p, end, count uint32) []uint32 {
	var out []uint32
	for ; p+4 <= end && uint32(len(out)) < count; p += 4 {
		out = append(out, v.U32(p))
	}
	return out
}

// Directive decodes the directive at off and confirms it is one of kinds.
// A zero offset yields ErrAbsent.
func Directive(v View, off uint32, kinds ...format.DirectiveKind) (format.Directive, error) {
	if off == 0 {
		return nil, newError(v.id, off, ErrAbsent)
	}
	d, err := DecodeDirective(v, off)
	if err != nil {
		return nil, err
	}
	if len(kinds) == 0 {
		return d, nil
	}
	k := d.Header().Kind
	for _, want := range kinds {
		if k == want {
			return d, nil
		}
	}
	return d, newError(v.id, off, ErrWrongKind)
}
