package directory_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/go-chi/chi"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	directoryDatamodel "github.com/frahmantamala/timeoff-management/internal/core/datamodel/directory"
	"github.com/frahmantamala/timeoff-management/internal/directory"
	directoryPostgres "github.com/frahmantamala/timeoff-management/internal/directory/postgres"
	"github.com/frahmantamala/timeoff-management/internal/transport"
)

func TestDirectory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Directory Suite")
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

var _ = Describe("Directory Handler Integration", func() {
	var (
		db      *gorm.DB
		service *directory.Service
		handler *directory.Handler
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&directoryDatamodel.Department{}, &directoryDatamodel.Team{})
		Expect(err).NotTo(HaveOccurred())

		repo := directoryPostgres.NewDirectoryRepository(db)
		service = directory.NewService(repo, slogger)
		baseHandler := &transport.BaseHandler{Logger: slogger}
		handler = directory.NewHandler(baseHandler, service)
	})

	Describe("Seed", func() {
		It("should insert the full hierarchy exactly once", func() {
			seeded, err := service.Seed()
			Expect(err).NotTo(HaveOccurred())
			Expect(seeded).To(BeTrue())

			depts, err := service.Departments()
			Expect(err).NotTo(HaveOccurred())
			Expect(depts).To(HaveLen(7))

			teams, err := service.Teams(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(teams).To(HaveLen(19))
		})

		It("should be a no-op when departments already exist", func() {
			seeded, err := service.Seed()
			Expect(err).NotTo(HaveOccurred())
			Expect(seeded).To(BeTrue())

			seeded, err = service.Seed()
			Expect(err).NotTo(HaveOccurred())
			Expect(seeded).To(BeFalse())

			depts, err := service.Departments()
			Expect(err).NotTo(HaveOccurred())
			Expect(depts).To(HaveLen(7))
		})
	})

	Describe("HTTP handlers", func() {
		BeforeEach(func() {
			_, err := service.Seed()
			Expect(err).NotTo(HaveOccurred())
		})

		It("should handle GET /departments", func() {
			req := httptest.NewRequest(http.MethodGet, "/departments", nil)
			w := httptest.NewRecorder()

			handler.GetDepartments(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Departments []*directory.Department `json:"departments"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Departments).To(HaveLen(7))

			names := make([]string, 0, len(response.Departments))
			for _, d := range response.Departments {
				names = append(names, d.Name)
			}
			Expect(names).To(ContainElement("Engineering"))
			Expect(names).To(ContainElement("Enterprise Digital"))
		})

		It("should handle GET /teams without a filter", func() {
			req := httptest.NewRequest(http.MethodGet, "/teams", nil)
			w := httptest.NewRecorder()

			handler.GetTeams(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Teams []*directory.Team `json:"teams"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Teams).To(HaveLen(19))
		})

		It("should filter GET /teams by department", func() {
			depts, err := service.Departments()
			Expect(err).NotTo(HaveOccurred())

			var engineeringID int64
			for _, d := range depts {
				if d.Name == "Engineering" {
					engineeringID = d.ID
				}
			}
			Expect(engineeringID).NotTo(BeZero())

			req := httptest.NewRequest(http.MethodGet, "/teams?department_id="+strconv.FormatInt(engineeringID, 10), nil)
			w := httptest.NewRecorder()

			handler.GetTeams(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Teams []*directory.Team `json:"teams"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Teams).To(HaveLen(4))
			for _, team := range response.Teams {
				Expect(team.DepartmentID).To(Equal(engineeringID))
			}
		})

		It("should return an empty list for an unknown department filter", func() {
			req := httptest.NewRequest(http.MethodGet, "/teams?department_id=999", nil)
			w := httptest.NewRecorder()

			handler.GetTeams(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response struct {
				Teams []*directory.Team `json:"teams"`
			}
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Teams).To(BeEmpty())
		})

		It("should reject a non-numeric department filter", func() {
			req := httptest.NewRequest(http.MethodGet, "/teams?department_id=abc", nil)
			w := httptest.NewRecorder()

			handler.GetTeams(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("should handle GET /teams/{id} with its department", func() {
			teams, err := service.Teams(nil)
			Expect(err).NotTo(HaveOccurred())
			team := teams[0]

			req := httptest.NewRequest(http.MethodGet, "/teams/"+strconv.FormatInt(team.ID, 10), nil)
			req = withURLParam(req, "id", strconv.FormatInt(team.ID, 10))
			w := httptest.NewRecorder()

			handler.GetTeam(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var response directory.TeamWithDepartment
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Team.ID).To(Equal(team.ID))
			Expect(response.Department).NotTo(BeNil())
			Expect(response.Department.ID).To(Equal(team.DepartmentID))
		})

		It("should return 404 for an unknown team", func() {
			req := httptest.NewRequest(http.MethodGet, "/teams/999", nil)
			req = withURLParam(req, "id", "999")
			w := httptest.NewRecorder()

			handler.GetTeam(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should reject a non-numeric team id", func() {
			req := httptest.NewRequest(http.MethodGet, "/teams/abc", nil)
			req = withURLParam(req, "id", "abc")
			w := httptest.NewRecorder()

			handler.GetTeam(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
