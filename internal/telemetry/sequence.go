// FilePath: internal/telemetry/sequence.go
package telemetry

// sequenceModulus is the period of the 12-bit Sigfox message counter.
const sequenceModulus = 4096

// LostMessages computes how many messages were skipped between the last
// stored sequence number and the incoming one, accounting for counter
// wraparound. Consecutive messages yield 0.
//
// An incoming number equal to the last one takes the wraparound path and
// yields 4095, i.e. one full counter cycle of loss. The original firmware
// integration behaves the same way; see DESIGN.md before changing it.
func LostMessages(lastSeq, seq int) int {
	interval := seq - lastSeq
	if interval <= 0 {
		interval += sequenceModulus
	}
	return interval - 1
}
