package decoder

// DataBlock is one Reed-Solomon block: data codewords followed by its
// error-correction codewords.
type DataBlock struct {
	NumDataCodewords int
	Codewords        []byte
	// Erasures are positions in Codewords known to be unreliable.
	Erasures []int
}

// GetDataBlocks de-interleaves the raw codeword stream into blocks.
// Shorter blocks come first; longer blocks carry one extra data codeword.
// Raw indices listed in erasures are carried into the owning block. raw
// must hold v.TotalCodewords codewords.
func GetDataBlocks(raw []byte, erasures []int, v *Version, level ECLevel) []DataBlock {
	ecBlocks := v.ECBlocksForLevel(level)
	ecc := ecBlocks.ECCodewordsPerBlock

	var blocks []DataBlock
	for _, group := range ecBlocks.Blocks {
		for i := 0; i < group.Count; i++ {
			blocks = append(blocks, DataBlock{
				NumDataCodewords: group.DataCodewords,
				Codewords:        make([]byte, group.DataCodewords+ecc),
			})
		}
	}
	longData := blocks[len(blocks)-1].NumDataCodewords

	// owner maps each raw index to its block and offset.
	type slot struct{ block, offset int }
	owner := make([]slot, 0, len(raw))
	for i := 0; i < longData; i++ {
		for j := range blocks {
			if i < blocks[j].NumDataCodewords {
				owner = append(owner, slot{j, i})
			}
		}
	}
	for i := 0; i < ecc; i++ {
		for j := range blocks {
			owner = append(owner, slot{j, blocks[j].NumDataCodewords + i})
		}
	}

	for k, s := range owner {
		blocks[s.block].Codewords[s.offset] = raw[k]
	}
	for _, k := range erasures {
		if k < len(owner) {
			s := owner[k]
			blocks[s.block].Erasures = append(blocks[s.block].Erasures, s.offset)
		}
	}
	return blocks
}
