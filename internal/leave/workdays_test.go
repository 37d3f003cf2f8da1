package leave_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ruangkerja/leave-management/internal/leave"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var _ = Describe("CountWorkingDays", func() {
	It("counts a full Monday to Friday week as 5 days", func() {
		// 2025-06-02 is a Monday
		Expect(leave.CountWorkingDays(date(2025, 6, 2), date(2025, 6, 6))).To(Equal(5))
	})

	It("does not count the weekend inside a range", func() {
		// Friday through Monday
		Expect(leave.CountWorkingDays(date(2025, 6, 6), date(2025, 6, 9))).To(Equal(2))
	})

	It("counts a single working day when start equals end", func() {
		Expect(leave.CountWorkingDays(date(2025, 6, 4), date(2025, 6, 4))).To(Equal(1))
	})

	It("returns zero for a weekend-only range", func() {
		// Saturday and Sunday
		Expect(leave.CountWorkingDays(date(2025, 6, 7), date(2025, 6, 8))).To(Equal(0))
	})

	It("returns zero when end precedes start", func() {
		Expect(leave.CountWorkingDays(date(2025, 6, 6), date(2025, 6, 2))).To(Equal(0))
	})

	It("spans multiple weeks correctly", func() {
		// two full weeks plus the Monday after
		Expect(leave.CountWorkingDays(date(2025, 6, 2), date(2025, 6, 16))).To(Equal(11))
	})

	It("ignores the time of day on the endpoints", func() {
		start := time.Date(2025, 6, 2, 23, 30, 0, 0, time.UTC)
		end := time.Date(2025, 6, 6, 0, 15, 0, 0, time.UTC)
		Expect(leave.CountWorkingDays(start, end)).To(Equal(5))
	})
})
