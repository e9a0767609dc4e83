package soe

// tupletOffsets lists, for each supported constellation size, every
// admissible offset pattern relative to its smallest member. A candidate
// p is counted as a k-tuplet if p plus every offset in any one pattern is
// still marked possibly-prime.
var tupletOffsets = map[int][][]uint64{
	2: {{0, 2}},
	3: {{0, 2, 6}, {0, 4, 6}},
	4: {{0, 2, 6, 8}},
	5: {{0, 2, 6, 8, 12}, {0, 4, 6, 8, 12}},
	6: {{0, 4, 6, 10, 12, 16}},
	7: {{0, 2, 6, 8, 12, 18, 20}, {0, 2, 8, 12, 14, 18, 20}},
}

// maxTupletOffset is the largest offset used by any supported pattern;
// it bounds how far a lookahead window must extend past a candidate's
// own byte to test every pattern.
const maxTupletOffset = 20
