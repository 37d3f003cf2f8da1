package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

// Mock UserRepository for testing
type mockUserRepository struct {
	users         map[string]string // email -> password hash
	userIDs       map[string]string // email -> userID
	usersByID     map[int64]*User   // userID -> User with permissions
	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.DefaultCost)

	return &mockUserRepository{
		users: map[string]string{
			"sari@example.com":  string(hashedPassword),
			"wulan@example.com": string(hashedPassword),
		},
		userIDs: map[string]string{
			"sari@example.com":  "1",
			"wulan@example.com": "2",
		},
		usersByID: map[int64]*User{
			1: {ID: 1, Email: "sari@example.com", Permissions: []string{PermSubmitLeave, PermViewOwnLeave}},
			2: {ID: 2, Email: "wulan@example.com", Permissions: []string{PermApproveLeave, PermRejectLeave, PermViewAllLeave, PermManageBalances}},
		},
	}
}

func (m *mockUserRepository) GetPasswordForEmail(email string) (string, string, error) {
	if m.returnError {
		return "", "", m.errorToReturn
	}

	if hash, exists := m.users[email]; exists {
		if userID, userExists := m.userIDs[email]; userExists {
			return hash, userID, nil
		}
	}
	return "", "", errors.New("user not found")
}

func (m *mockUserRepository) GetUserWithPermissions(userID int64) (*User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}

	if user, exists := m.usersByID[userID]; exists {
		return user, nil
	}
	return nil, errors.New("user not found")
}

func (m *mockUserRepository) setError(err error) {
	m.returnError = true
	m.errorToReturn = err
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service       *Service
		mockRepo      *mockUserRepository
		tokenGen      *JWTTokenGenerator
		accessSecret  = "test-access-secret-test-access-secret"
		refreshSecret = "test-refresh-secret-test-refresh-secret"
		accessTTL     = 15 * time.Minute
		refreshTTL    = 24 * time.Hour
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator(accessSecret, refreshSecret, accessTTL, refreshTTL)
		service = NewService(mockRepo, tokenGen)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return access and refresh tokens", func() {
				dto := LoginDTO{
					Email:    "sari@example.com",
					Password: "correct_password",
				}

				tokens, err := service.Authenticate(dto)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.RefreshToken).ToNot(gomega.BeEmpty())
				gomega.Expect(tokens.AccessToken).ToNot(gomega.Equal(tokens.RefreshToken))
			})

			ginkgo.It("should generate valid JWT tokens", func() {
				dto := LoginDTO{
					Email:    "wulan@example.com",
					Password: "correct_password",
				}

				tokens, err := service.Authenticate(dto)

				gomega.Expect(err).ToNot(gomega.HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal("2"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should return error for unknown email", func() {
				dto := LoginDTO{
					Email:    "nonexistent@example.com",
					Password: "any_password",
				}

				tokens, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should return error for a wrong password", func() {
				dto := LoginDTO{
					Email:    "sari@example.com",
					Password: "wrong_password",
				}

				tokens, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should not leak repository errors", func() {
				mockRepo.setError(errors.New("database error"))
				dto := LoginDTO{
					Email:    "sari@example.com",
					Password: "correct_password",
				}

				_, err := service.Authenticate(dto)

				gomega.Expect(err).To(gomega.Equal(ErrInvalidCredentials))
			})
		})

		ginkgo.Context("when input validation fails", func() {
			ginkgo.It("should return validation error for empty email", func() {
				tokens, err := service.Authenticate(LoginDTO{Password: "password"})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("email is required"))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})

			ginkgo.It("should return validation error for empty password", func() {
				tokens, err := service.Authenticate(LoginDTO{Email: "sari@example.com"})

				gomega.Expect(err).To(gomega.HaveOccurred())
				gomega.Expect(err.Error()).To(gomega.ContainSubstring("password is required"))
				gomega.Expect(tokens.AccessToken).To(gomega.BeEmpty())
			})
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a new token pair from a valid refresh token", func() {
			tokens, err := service.Authenticate(LoginDTO{Email: "sari@example.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			refreshed, err := service.RefreshTokens(tokens.RefreshToken)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(refreshed.AccessToken).ToNot(gomega.BeEmpty())

			claims, err := service.ValidateAccessToken(refreshed.AccessToken)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(claims.UserID).To(gomega.Equal("1"))
		})

		ginkgo.It("should reject a malformed token", func() {
			_, err := service.RefreshTokens("not-a-token")

			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("should reject an expired token", func() {
			shortGen := NewJWTTokenGenerator(accessSecret, refreshSecret, accessTTL, time.Millisecond)
			shortService := NewService(mockRepo, shortGen)
			tokens, err := shortService.Authenticate(LoginDTO{Email: "sari@example.com", Password: "correct_password"})
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			time.Sleep(5 * time.Millisecond)
			_, err = shortService.RefreshTokens(tokens.RefreshToken)

			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("GetUserWithPermissions", func() {
		ginkgo.It("should load the user with its permissions", func() {
			user, err := service.GetUserWithPermissions(2)

			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(user.HasPermission(PermApproveLeave)).To(gomega.BeTrue())
			gomega.Expect(user.HasPermission(PermSubmitLeave)).To(gomega.BeFalse())
		})
	})
})

var _ = ginkgo.Describe("PermissionChecker", func() {
	checker := NewPermissionChecker()

	ginkgo.It("treats admin as allowed everywhere", func() {
		perms := []string{PermAdmin}

		gomega.Expect(checker.CanApproveLeave(perms)).To(gomega.BeTrue())
		gomega.Expect(checker.CanRejectLeave(perms)).To(gomega.BeTrue())
		gomega.Expect(checker.CanManageBalances(perms)).To(gomega.BeTrue())
		gomega.Expect(checker.CanManageLeaveTypes(perms)).To(gomega.BeTrue())
		gomega.Expect(checker.CanViewAllLeave(perms)).To(gomega.BeTrue())
	})

	ginkgo.It("recognizes reviewers as HR", func() {
		gomega.Expect(checker.IsHR([]string{PermApproveLeave})).To(gomega.BeTrue())
		gomega.Expect(checker.IsHR([]string{PermSubmitLeave})).To(gomega.BeFalse())
	})

	ginkgo.It("keeps plain employees out of review operations", func() {
		perms := []string{PermSubmitLeave, PermViewOwnLeave}

		gomega.Expect(checker.CanApproveLeave(perms)).To(gomega.BeFalse())
		gomega.Expect(checker.CanViewAllLeave(perms)).To(gomega.BeFalse())
	})
})
