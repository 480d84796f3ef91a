// Package zlite compresses and decompresses a byte stream block by block
// using a reduced-offset Lempel-Ziv matcher (internal/rolz) followed by a
// length-limited Polar prefix code (internal/polar).
package zlite
