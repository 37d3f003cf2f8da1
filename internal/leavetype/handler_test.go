package leavetype_test

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ruangkerja/leave-management/internal/auth"
	balanceDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/balance"
	leaveDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/leave"
	leavetypeDatamodel "github.com/ruangkerja/leave-management/internal/core/datamodel/leavetype"
	"github.com/ruangkerja/leave-management/internal/leavetype"
	leavetypePostgres "github.com/ruangkerja/leave-management/internal/leavetype/postgres"
	"github.com/ruangkerja/leave-management/internal/transport"
)

var _ = Describe("LeaveType Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    leavetype.RepositoryAPI
		service *leavetype.Service
		handler *leavetype.Handler
		router  *chi.Mux
		admin   *auth.User
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(
			&leavetypeDatamodel.LeaveType{},
			&leaveDatamodel.LeaveRequest{},
			&balanceDatamodel.BalanceEntry{},
		)
		Expect(err).NotTo(HaveOccurred())

		repo = leavetypePostgres.NewLeaveTypeRepository(db)
		service = leavetype.NewService(repo, auth.NewPermissionChecker(), slogger)
		handler = leavetype.NewHandler(transport.NewBaseHandler(slogger), service)

		router = chi.NewRouter()
		router.Get("/leave-types", handler.GetLeaveTypes)
		router.Post("/leave-types", handler.CreateLeaveType)
		router.Delete("/leave-types/{id}", handler.DeleteLeaveType)

		admin = &auth.User{ID: 9, Email: "hr@example.com", Permissions: []string{auth.PermManageLeaveTypes}}

		seeded := []*leavetypeDatamodel.LeaveType{
			{Name: "annual", Description: "Annual leave", RequiresApproval: true, BalanceTracked: true, DefaultDays: 25, IsActive: true},
			{Name: "sick", Description: "Sick leave", RequiresApproval: true, BalanceTracked: true, DefaultDays: 15, IsActive: true},
			{Name: "retired", Description: "No longer offered", IsActive: false},
		}
		for _, t := range seeded {
			Expect(repo.Create(t)).To(Succeed())
		}
	})

	Describe("GET /leave-types", func() {
		It("should list only active types", func() {
			req := httptest.NewRequest(http.MethodGet, "/leave-types", nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

			var response leavetype.LeaveTypesResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.LeaveTypes).To(HaveLen(2))

			names := []string{response.LeaveTypes[0].Name, response.LeaveTypes[1].Name}
			Expect(names).To(ConsistOf("annual", "sick"))
		})
	})

	Describe("POST /leave-types", func() {
		It("should create a type for an authorized user", func() {
			body := `{"name":"parental","description":"Parental leave","requires_approval":true,"balance_tracked":true,"default_days":90}`
			req := httptest.NewRequest(http.MethodPost, "/leave-types", strings.NewReader(body))
			req = req.WithContext(auth.ContextWithUser(req.Context(), admin))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			stored, err := repo.GetByName("parental")
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).NotTo(BeNil())
			Expect(stored.DefaultDays).To(Equal(90))
			Expect(stored.IsActive).To(BeTrue())
		})

		It("should reject an unauthenticated request", func() {
			body := `{"name":"parental","default_days":90,"balance_tracked":true}`
			req := httptest.NewRequest(http.MethodPost, "/leave-types", strings.NewReader(body))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("DELETE /leave-types/{id}", func() {
		It("should delete an unreferenced type", func() {
			stored, err := repo.GetByName("sick")
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodDelete, "/leave-types/"+strconv.FormatInt(stored.ID, 10), nil)
			req = req.WithContext(auth.ContextWithUser(req.Context(), admin))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))

			gone, err := repo.GetByID(stored.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(gone).To(BeNil())
		})

		It("should refuse to delete a type with ledger entries", func() {
			stored, err := repo.GetByName("annual")
			Expect(err).NotTo(HaveOccurred())

			entry := &balanceDatamodel.BalanceEntry{
				EmployeeID:  1,
				LeaveTypeID: stored.ID,
				Year:        time.Now().Year(),
				TotalDays:   25,
				UsedDays:    5,
			}
			Expect(db.Create(entry).Error).To(Succeed())

			req := httptest.NewRequest(http.MethodDelete, "/leave-types/"+strconv.FormatInt(stored.ID, 10), nil)
			req = req.WithContext(auth.ContextWithUser(req.Context(), admin))
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))

			kept, err := repo.GetByID(stored.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(kept).NotTo(BeNil())
		})
	})
})
