package verify

import (
	"fmt"

	"github.com/gogpu/brig/format"
	"github.com/gogpu/brig/section"
)

// validateCode checks every record of the code section on its own.
// Operand shapes are left to the instruction pass.
func (v *Validator) validateCode() Result {
	res := prefix(v.code)
	for cur := section.Begin(v.code); !cur.Done(); {
		off := cur.Offset()
		i, err := section.DecodeInst(v.code, off)
		if err != nil {
			c := newChecker(format.Code, off)
			kind, msg, cond := describe(err)
			c.require(kind, false, msg, cond)
			return res.And(c.result())
		}
		res = res.And(v.inst(i))
		_ = cur.Next()
	}
	return res
}

// inst checks the fields of one instruction.
//
//nolint:gocognit,gocyclo,cyclop,funlen // one case per instruction kind
func (v *Validator) inst(i format.Inst) Result {
	h := i.Header()
	c := newChecker(format.Code, h.Offset)

	c.check(h.Type.Valid(), "Invalid type", "type <= f64x2")
	c.check(h.Packing.Valid(), "Invalid packing control", "packing <= psat")

	n := h.NumOperands()
	for k, o := range h.Operands {
		if o == 0 {
			continue
		}
		c.expect(ErrBounds, o < v.operands.Len(), "o_operands past the operands section",
			fmt.Sprintf("o_operands[%d] < operands size", k))
		if k > n {
			c.check(false, "o_operands must be contiguous", fmt.Sprintf("o_operands[%d] == 0", n))
		}
	}

	switch i := i.(type) {
	case *format.BaseInst:
		c.check(h.Opcode.Valid(), "Invalid opcode", "opcode < invalid")

	case *format.ModInst:
		c.check(h.Opcode.Valid(), "Invalid opcode", "opcode < invalid")
		aluModifier(c, i.Modifier)

	case *format.CmpInst:
		c.check(h.Opcode == format.OpCmp || h.Opcode == format.OpPackedCmp, "Invalid opcode", "opcode in {cmp, packedcmp}")
		aluModifier(c, i.Modifier)
		c.check(i.CompareOp <= format.CmpSgeu, "Invalid comparisonOperator", "comparisonOperator <= sgeu")
		c.check(i.SourceType.Valid(), "Invalid sourceType", "sourceType <= f64x2")
		c.check(i.Reserved == 0, "Invalid reserved", "reserved == 0")

	case *format.CvtInst:
		c.check(h.Opcode == format.OpCvt, "Invalid opcode", "opcode == cvt")
		aluModifier(c, i.Modifier)
		c.check(i.SourceType.Valid(), "Invalid stype", "stype <= f64x2")
		c.check(i.Reserved == 0, "reserved must be zero", "reserved == 0")

	case *format.MemInst:
		c.check(h.Opcode.Valid(), "Invalid opcode", "opcode < invalid")
		c.check(i.StorageClass <= format.Flat,
			"Invalid storage class, must be global, group, private, kernarg, readonly, spill, arg or flat",
			"storageClass <= flat")

	case *format.LdStInst:
		c.check(h.Opcode.Valid(), "Invalid opcode", "opcode < invalid")
		c.check(i.StorageClass <= format.Flat,
			"Invalid storage class, must be global, group, private, kernarg, readonly, spill, arg or flat",
			"storageClass <= flat")
		switch i.Semantic {
		case format.SemRegular, format.SemAcquire, format.SemRelease, format.SemDep,
			format.SemParAcquire, format.SemParRelease:
		default:
			c.check(false, "Invalid memorySemantic",
				"memorySemantic in {regular, acquire, release, dep, partacquire, partrelease}")
		}
		c.check(i.EquivClass < 64, "Invalid equivClass, must less than 64", "equivClass < 64")

	case *format.BarInst:
		switch h.Opcode {
		case format.OpBarrier, format.OpSync, format.OpBrn:
		default:
			c.check(false, "Invalid opcode, should be either BrigBarrier, BrigSync or BrigBrn",
				"opcode in {barrier, sync, brn}")
		}
		c.check(i.SyncFlags <= format.AllSyncFlags, "Invalid syncFlags", "syncFlags <= 7")

	case *format.SegpInst:
		switch h.Opcode {
		case format.OpSegmentp, format.OpFtoS, format.OpStoF:
		default:
			c.check(false, "Invalid opcode", "opcode in {segmentp, ftos, stof}")
		}
		c.check(i.StorageClass < format.InvalidSpace && i.StorageClass != format.Flat,
			"Invalid storage class", "storageClass < flat")
		c.check(i.SourceType.Valid(), "Invalid type", "sourceType <= f64x2")
		c.check(i.Reserved == 0, "reserved must be zero", "reserved == 0")

	case *format.AtomicInst:
		c.check(h.Opcode == format.OpAtomic || h.Opcode == format.OpAtomicNoRet,
			"Invalid opcode, should be either BrigAtomic or BrigAtomicNoRet", "opcode in {atomic, atomicnoret}")
		c.check(i.AtomicOp <= format.AtomicSub, "Invalid atomicOperation", "atomicOperation <= sub")
		c.check(i.StorageClass <= format.Flat,
			"Invalid storage class, must be global, group, private, kernarg, readonly, spill, arg or flat",
			"storageClass <= flat")
		switch i.Semantic {
		case format.SemRegular, format.SemAcquire, format.SemAcquireRelease, format.SemParAcquireRelease:
		default:
			c.check(false, "Invalid memorySemantic",
				"memorySemantic in {regular, acquire, acquirerelease, partacquirerelease}")
		}

	case *format.AtomicImageInst:
		c.check(h.Opcode == format.OpAtomicImage || h.Opcode == format.OpAtomicNoRetImage,
			"Invalid opcode, should be either BrigAtomicImage or BrigAtomicNoRetImage",
			"opcode in {atomicimage, atomicnoretimage}")
		c.check(i.AtomicOp <= format.AtomicSub, "Invalid atomicOperation", "atomicOperation <= sub")
		c.check(i.StorageClass == format.Global, "Invalid storage class, must be global", "storageClass == global")
		switch i.Semantic {
		case format.SemRegular, format.SemAcquire, format.SemAcquireRelease:
		default:
			c.check(false, "Invalid memorySemantic", "memorySemantic in {regular, acquire, acquirerelease}")
		}
		c.check(i.Geom <= format.Geom2DA, "Invalid geom", "geom <= 2da")

	case *format.ImageInst:
		switch h.Opcode {
		case format.OpLdImage, format.OpStImage, format.OpRdImage:
		default:
			c.check(false, "Invalid opcode", "opcode in {ld_image, st_image, rd_image}")
		}
		c.check(i.Geom <= format.Geom2DA, "Invalid type of image geometry", "geom <= 2da")
		c.check(i.SourceType.Valid(), "Invalid stype", "stype <= f64x2")
		c.check(i.Reserved == 0, "reserved must be zero", "reserved == 0")
	}

	return c.result()
}

// aluModifier checks the modifier word. An unset valid bit disables it.
func aluModifier(c *checker, m format.AluModifier) {
	if !m.Valid() {
		return
	}
	if m.Approx() {
		c.check(m.FloatOrInt(), "Invalid floatOrInt", "approx implies floatOrInt")
	}
	if !m.FloatOrInt() {
		c.check(!m.Ftz(), "Invalid ftz", "!floatOrInt implies !ftz")
	}
	c.check(m.Reserved() == 0, "Invalid reserved", "reserved == 0")
}
