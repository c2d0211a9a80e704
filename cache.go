package glyphmatch

// SignatureCache owns the precomputed glyph signatures for one
// charset/font/cell-size configuration. Glyph signatures are pure
// functions of that configuration, so the cache is built once from the
// atlas and handed out read-only until Invalidate is called.
//
// Rebuilds allocate a fresh slice rather than mutating the old one, so
// an analysis that is already holding a signature slice never has it
// change underneath, even if the configuration is swapped mid-flight.
type SignatureCache struct {
	sigs  []GlyphSignature
	valid bool
}

// NewSignatureCache returns an empty, invalid cache.
func NewSignatureCache() *SignatureCache {
	return &SignatureCache{}
}

// Invalidate discards the cached signatures. Call whenever the character
// set, font, or cell size changes; the next Signatures call rebuilds.
func (c *SignatureCache) Invalidate() {
	c.sigs = nil
	c.valid = false
}

// Valid reports whether the cache currently holds signatures.
func (c *SignatureCache) Valid() bool {
	return c.valid
}

// Signatures returns the glyph signatures for the given character set
// and atlas, rebuilding them if the cache has been invalidated. The
// returned slice is shared and must be treated as read-only.
func (c *SignatureCache) Signatures(cs *CharacterSet, atlas *Atlas) []GlyphSignature {
	if c.valid {
		return c.sigs
	}

	sigs := make([]GlyphSignature, atlas.Count)
	for i := 0; i < atlas.Count; i++ {
		sigs[i] = GlyphSignature{
			Signature: ExtractSignature(atlas.Image,
				i*atlas.CellWidth, 0, atlas.CellWidth, atlas.CellHeight),
			Char:  cs.Rune(i),
			Index: i,
		}
	}

	c.sigs = sigs
	c.valid = true
	return sigs
}
