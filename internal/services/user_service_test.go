package services

import (
	"context"
	"net/http"
	"testing"

	"propertymanager/internal/models"
	"propertymanager/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceTestSuite struct {
	suite.Suite
	mocks   *mockRepos
	service *userService
	ctx     context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	var repos *repositories.Repositories
	var tx *inlineTx
	suite.mocks, repos, tx = newMockRepos()
	suite.service = NewUserService(repos, tx).(*userService)
	suite.service.bcryptCost = bcrypt.MinCost
	suite.ctx = context.Background()
}

func (suite *UserServiceTestSuite) TearDownTest() {
	suite.mocks.assertExpectations(suite.T())
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (suite *UserServiceTestSuite) TestCreate_HashesPasswordAndDefaultsRole() {
	var stored *models.User
	suite.mocks.users.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*models.User)
	}).Return(nil)

	user, err := suite.service.Create(suite.ctx, &CreateUserRequest{
		Username: "clerk",
		Password: "s3cret",
		Email:    "clerk@example.com",
	})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.RoleUser, user.Role)
	assert.True(suite.T(), user.IsActive)
	assert.NotEqual(suite.T(), "s3cret", stored.Password)
	assert.NoError(suite.T(), bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cret")))
}

func (suite *UserServiceTestSuite) TestCreate_DuplicateConflicts() {
	suite.mocks.users.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrUniqueViolation)

	_, err := suite.service.Create(suite.ctx, &CreateUserRequest{
		Username: "admin",
		Password: "admin",
		Email:    "admin@example.com",
	})

	assertAppStatus(suite.T(), err, http.StatusConflict)
}

func (suite *UserServiceTestSuite) TestUpdate_RehashesOnlyWhenPasswordGiven() {
	existing := &models.User{ID: 4, Username: "clerk", Password: "old-hash", Role: models.RoleUser, IsActive: true}
	suite.mocks.users.On("GetByID", mock.Anything, int64(4)).Return(existing, nil)
	suite.mocks.users.On("Update", mock.Anything, existing).Return(nil)
	role := models.RoleManager

	updated, err := suite.service.Update(suite.ctx, 4, &UpdateUserRequest{Role: &role})

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "old-hash", updated.Password)
	assert.Equal(suite.T(), models.RoleManager, updated.Role)
}

func (suite *UserServiceTestSuite) TestEnsureAdmin_SkipsExisting() {
	suite.mocks.users.On("GetByUsername", mock.Anything, "admin").Return(&models.User{ID: 1}, nil)

	created, err := suite.service.EnsureAdmin(suite.ctx, "admin", "admin", "admin@example.com")

	suite.Require().NoError(err)
	assert.False(suite.T(), created)
}

func (suite *UserServiceTestSuite) TestEnsureAdmin_CreatesAdmin() {
	suite.mocks.users.On("GetByUsername", mock.Anything, "admin").Return(nil, repositories.ErrNotFound)
	suite.mocks.users.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return u.Role == models.RoleAdmin && u.IsActive
	})).Return(nil)

	created, err := suite.service.EnsureAdmin(suite.ctx, "admin", "admin", "admin@example.com")

	suite.Require().NoError(err)
	assert.True(suite.T(), created)
}

func (suite *UserServiceTestSuite) TestEnsureAdmin_LostRace() {
	suite.mocks.users.On("GetByUsername", mock.Anything, "admin").Return(nil, repositories.ErrNotFound)
	suite.mocks.users.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrUniqueViolation)

	created, err := suite.service.EnsureAdmin(suite.ctx, "admin", "admin", "admin@example.com")

	suite.Require().NoError(err)
	assert.False(suite.T(), created)
}
