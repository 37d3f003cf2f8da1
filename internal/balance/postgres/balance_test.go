package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ruangkerja/leave-management/internal/balance"
	balanceDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/balance"
)

func TestBalanceRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "BalanceRepository Suite")
}

var _ = Describe("BalanceRepository", func() {
	var (
		db   *gorm.DB
		repo balance.RepositoryAPI
	)

	const (
		employeeID  = int64(10)
		leaveTypeID = int64(1)
		year        = 2025
	)

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&balanceDatamodel.BalanceEntry{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewBalanceRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	seedEntry := func(total, used int) {
		err := repo.Create(&balanceDatamodel.BalanceEntry{
			EmployeeID:  employeeID,
			LeaveTypeID: leaveTypeID,
			Year:        year,
			TotalDays:   total,
			UsedDays:    used,
		})
		Expect(err).NotTo(HaveOccurred())
	}

	Describe("GetEntry", func() {
		It("returns nil for a missing entry", func() {
			entry, err := repo.GetEntry(employeeID, leaveTypeID, year)

			Expect(err).NotTo(HaveOccurred())
			Expect(entry).To(BeNil())
		})

		It("returns the stored entry", func() {
			seedEntry(25, 3)

			entry, err := repo.GetEntry(employeeID, leaveTypeID, year)

			Expect(err).NotTo(HaveOccurred())
			Expect(entry).NotTo(BeNil())
			Expect(entry.TotalDays).To(Equal(25))
			Expect(entry.UsedDays).To(Equal(3))
		})
	})

	Describe("Debit", func() {
		It("increments used days while covered", func() {
			seedEntry(25, 0)

			affected, err := repo.Debit(employeeID, leaveTypeID, year, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(Equal(int64(1)))

			entry, err := repo.GetEntry(employeeID, leaveTypeID, year)
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.UsedDays).To(Equal(5))
		})

		It("affects no rows when the draw would overdraw", func() {
			seedEntry(25, 21)

			affected, err := repo.Debit(employeeID, leaveTypeID, year, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(Equal(int64(0)))

			entry, err := repo.GetEntry(employeeID, leaveTypeID, year)
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.UsedDays).To(Equal(21))
		})

		It("affects no rows when the entry does not exist", func() {
			affected, err := repo.Debit(employeeID, leaveTypeID, year, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(Equal(int64(0)))
		})

		It("admits only as many debits as the entitlement covers", func() {
			seedEntry(25, 0)

			var wins int64
			for i := 0; i < 10; i++ {
				affected, err := repo.Debit(employeeID, leaveTypeID, year, 5)
				Expect(err).NotTo(HaveOccurred())
				wins += affected
			}
			Expect(wins).To(Equal(int64(5)))

			entry, err := repo.GetEntry(employeeID, leaveTypeID, year)
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.UsedDays).To(Equal(25))
		})
	})

	Describe("Credit", func() {
		It("decrements used days", func() {
			seedEntry(25, 5)

			affected, err := repo.Credit(employeeID, leaveTypeID, year, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(Equal(int64(1)))

			entry, err := repo.GetEntry(employeeID, leaveTypeID, year)
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.UsedDays).To(Equal(0))
		})

		It("affects no rows when the credit exceeds the used days", func() {
			seedEntry(25, 2)

			affected, err := repo.Credit(employeeID, leaveTypeID, year, 5)

			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(Equal(int64(0)))
		})
	})

	Describe("SetTotal", func() {
		It("overwrites the entitlement", func() {
			seedEntry(25, 5)

			affected, err := repo.SetTotal(employeeID, leaveTypeID, year, 30)

			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(Equal(int64(1)))

			entry, err := repo.GetEntry(employeeID, leaveTypeID, year)
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.TotalDays).To(Equal(30))
		})

		It("affects no rows when the total drops below the used days", func() {
			seedEntry(25, 12)

			affected, err := repo.SetTotal(employeeID, leaveTypeID, year, 10)

			Expect(err).NotTo(HaveOccurred())
			Expect(affected).To(Equal(int64(0)))

			entry, err := repo.GetEntry(employeeID, leaveTypeID, year)
			Expect(err).NotTo(HaveOccurred())
			Expect(entry.TotalDays).To(Equal(25))
		})
	})
})
