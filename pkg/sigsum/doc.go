// Package sigsum condenses logic-analyzer decoder output into compact,
// human-readable transaction reports.
//
// Quick start:
//
//	raw := readDecoderOutput() // one annotation per line
//	fmt.Println(sigsum.Summarize(raw, "i2c"))
//	// I2C: 3 transactions, devices: 0x50
//	// #001  W 0x50: [0B 00]
//	// ...
//
// All functions are pure and safe for concurrent use: the output depends
// only on the arguments. Unknown protocols fall back to a generic
// line-truncating view, so Summarize never fails.
package sigsum
