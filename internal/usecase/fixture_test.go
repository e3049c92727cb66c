package usecase

import (
	"io"
	"testing"
	"time"

	"telehealth-api/internal/infrastructure/cache"
	"telehealth-api/internal/repository"
	"telehealth-api/internal/service"
	"telehealth-api/internal/testutil"
	"telehealth-api/pkg/metrics"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	metrics *metrics.Metrics

	accounts      AccountUsecase
	doctors       DoctorUsecase
	patients      PatientUsecase
	consultations ConsultationUsecase
	transport     TransportUsecase
	ratings       RatingUsecase
	pharmacies    PharmacyUsecase
	donations     DonationUsecase
	admin         AdminUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)
	m := metrics.NewMetrics("test")

	accountRepo := repository.NewAccountRepository()
	doctorRepo := repository.NewDoctorProfileRepository()
	patientRepo := repository.NewPatientProfileRepository()
	consultationRepo := repository.NewConsultationRepository()
	ratingRepo := repository.NewRatingRepository()
	providerRepo := repository.NewTransportProviderRepository()
	bookingRepo := repository.NewTransportBookingRepository()
	donationRepo := repository.NewDonationRepository()
	auditRepo := repository.NewAuditLogRepository()

	auditService := service.NewAuditService(log, auditRepo)
	availability := service.NewAvailabilityCache(cache.NewMemoryCache(time.Minute, time.Minute), time.Minute, log)

	return &fixture{
		db:            db,
		metrics:       m,
		accounts:      NewAccountUsecase(db, log, accountRepo, patientRepo, auditService),
		doctors:       NewDoctorUsecase(db, log, accountRepo, doctorRepo, availability, auditService),
		patients:      NewPatientUsecase(db, log, patientRepo, auditService),
		consultations: NewConsultationUsecase(db, log, accountRepo, doctorRepo, consultationRepo, auditService, m),
		transport:     NewTransportUsecase(db, log, accountRepo, providerRepo, bookingRepo, availability, auditService, m, 5),
		ratings:       NewRatingUsecase(db, log, doctorRepo, consultationRepo, ratingRepo, availability, auditService, m),
		pharmacies: NewPharmacyUsecase(db, log, repository.NewPharmacyRepository(), repository.NewMedicineRepository(),
			repository.NewInventoryRepository(), auditService),
		donations: NewDonationUsecase(db, log, accountRepo, donationRepo, repository.NewDonationRequestRepository(), auditService),
		admin: NewAdminUsecase(db, log, accountRepo, doctorRepo, consultationRepo, donationRepo, auditRepo,
			availability, auditService),
	}
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}
