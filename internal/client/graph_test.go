package client

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	internalhttp "github.com/fivetwenty-io/partnercenter-client/internal/http"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
)

// requestLog records "METHOD path" lines seen by a test server.
type requestLog struct {
	mutex sync.Mutex
	lines []string
}

func (l *requestLog) add(request *http.Request) {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	l.lines = append(l.lines, request.Method+" "+request.URL.Path)
}

func (l *requestLog) all() []string {
	l.mutex.Lock()
	defer l.mutex.Unlock()

	return append([]string(nil), l.lines...)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestGDAPClient(t *testing.T) {
	t.Parallel()

	relationship := map[string]interface{}{
		"@odata.etag": "W/\"abc\"",
		"id":          "rel-1",
		"displayName": "Contoso admin",
		"duration":    "P730D",
		"status":      "created",
		"customer":    map[string]interface{}{"tenantId": "tenant-1"},
	}

	t.Run("ListRelationshipsByCustomer filters on tenant", func(t *testing.T) {
		t.Parallel()

		httpClient := newTestHTTPClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/tenantRelationships/delegatedAdminRelationships", request.URL.Path)
			assert.Equal(t, "customer/tenantId eq 'tenant-1'", request.URL.Query().Get("$filter"))
			assert.NotContains(t, request.URL.RawQuery, "+")
			writeJSON(t, writer, http.StatusOK, odata(relationship))
		})

		relationships, err := NewGDAPClient(httpClient).ListRelationshipsByCustomer(context.Background(), "tenant-1")
		require.NoError(t, err)
		require.Len(t, relationships, 1)
		assert.Equal(t, "W/\"abc\"", relationships[0].ETag)
		assert.Equal(t, "tenant-1", relationships[0].Customer.TenantID)
	})

	t.Run("UpdateRelationship sends If-Match and reads back on 204", func(t *testing.T) {
		t.Parallel()

		log := &requestLog{}

		httpClient := newTestHTTPClient(t, func(writer http.ResponseWriter, request *http.Request) {
			log.add(request)

			if request.Method == http.MethodPatch {
				assert.Equal(t, "W/\"abc\"", request.Header.Get("If-Match"))
				assert.Equal(t, "Renamed", readJSON(t, request)["displayName"])
				writer.WriteHeader(http.StatusNoContent)

				return
			}

			writeJSON(t, writer, http.StatusOK, relationship)
		})

		updated, err := NewGDAPClient(httpClient).UpdateRelationship(
			context.Background(), "rel-1",
			&msapi.GDAPRelationshipUpdate{DisplayName: "Renamed"},
			"W/\"abc\"",
		)
		require.NoError(t, err)
		assert.Equal(t, "rel-1", updated.ID)
		assert.Equal(t, []string{
			"PATCH /tenantRelationships/delegatedAdminRelationships/rel-1",
			"GET /tenantRelationships/delegatedAdminRelationships/rel-1",
		}, log.all())
	})

	t.Run("DeleteRelationship without etag", func(t *testing.T) {
		t.Parallel()

		httpClient := newTestHTTPClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodDelete, request.Method)
			assert.Empty(t, request.Header.Get("If-Match"))
			writer.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, NewGDAPClient(httpClient).DeleteRelationship(context.Background(), "rel-1", ""))
	})

	t.Run("CreateRelationshipRequest", func(t *testing.T) {
		t.Parallel()

		httpClient := newTestHTTPClient(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, "/tenantRelationships/delegatedAdminRelationships/rel-1/requests", request.URL.Path)
			assert.Equal(t, map[string]interface{}{"action": "lockForApproval"}, readJSON(t, request))
			writeJSON(t, writer, http.StatusCreated, map[string]interface{}{
				"id":     "req-1",
				"action": "lockForApproval",
				"status": "created",
			})
		})

		request, err := NewGDAPClient(httpClient).CreateRelationshipRequest(
			context.Background(), "rel-1", msapi.GDAPActionLockForApproval,
		)
		require.NoError(t, err)
		assert.Equal(t, "req-1", request.ID)
	})

	t.Run("access assignments", func(t *testing.T) {
		t.Parallel()

		log := &requestLog{}
		assignment := map[string]interface{}{
			"@odata.etag": "W/\"def\"",
			"id":          "assign-1",
			"status":      "pending",
			"accessContainer": map[string]interface{}{
				"accessContainerId":   "group-1",
				"accessContainerType": "securityGroup",
			},
		}

		httpClient := newTestHTTPClient(t, func(writer http.ResponseWriter, request *http.Request) {
			log.add(request)

			switch request.Method {
			case http.MethodPost:
				writeJSON(t, writer, http.StatusCreated, assignment)
			case http.MethodGet:
				writeJSON(t, writer, http.StatusOK, odata(assignment))
			case http.MethodDelete:
				assert.Equal(t, "W/\"def\"", request.Header.Get("If-Match"))
				writer.WriteHeader(http.StatusNoContent)
			}
		})

		gdap := NewGDAPClient(httpClient)

		created, err := gdap.CreateAccessAssignment(context.Background(), "rel-1", &msapi.GDAPAccessAssignmentCreate{
			AccessContainer: &msapi.GDAPAccessContainer{AccessContainerID: "group-1", AccessContainerType: "securityGroup"},
			AccessDetails: &msapi.GDAPAccessDetails{
				UnifiedRoles: []msapi.UnifiedRole{{RoleDefinitionID: "role-def-1"}},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "group-1", created.AccessContainer.AccessContainerID)

		list, err := gdap.ListAccessAssignments(context.Background(), "rel-1")
		require.NoError(t, err)
		require.Len(t, list, 1)

		require.NoError(t, gdap.DeleteAccessAssignment(context.Background(), "rel-1", "assign-1", list[0].ETag))

		assert.Equal(t, []string{
			"POST /tenantRelationships/delegatedAdminRelationships/rel-1/accessAssignments",
			"GET /tenantRelationships/delegatedAdminRelationships/rel-1/accessAssignments",
			"DELETE /tenantRelationships/delegatedAdminRelationships/rel-1/accessAssignments/assign-1",
		}, log.all())
	})
}

func TestDomainsClient(t *testing.T) {
	t.Parallel()

	log := &requestLog{}

	httpClient := newTestHTTPClient(t, func(writer http.ResponseWriter, request *http.Request) {
		log.add(request)

		switch request.URL.Path {
		case "/domains":
			if request.Method == http.MethodPost {
				assert.Equal(t, map[string]interface{}{"id": "contoso.com"}, readJSON(t, request))
			}

			writeJSON(t, writer, http.StatusOK, map[string]interface{}{"id": "contoso.com", "isVerified": false})
		case "/domains/contoso.com/verify":
			writeJSON(t, writer, http.StatusOK, map[string]interface{}{"id": "contoso.com", "isVerified": true})
		case "/domains/contoso.com/verificationDnsRecords":
			writeJSON(t, writer, http.StatusOK, odata(map[string]interface{}{
				"id":         "rec-1",
				"label":      "contoso.com",
				"recordType": "Txt",
				"text":       "MS=ms12345",
				"ttl":        3600,
			}))
		default:
			t.Errorf("unexpected path %s", request.URL.Path)
		}
	})

	domains := NewDomainsClient(httpClient)

	created, err := domains.Create(context.Background(), "contoso.com")
	require.NoError(t, err)
	assert.False(t, created.IsVerified)

	records, err := domains.VerificationDNSRecords(context.Background(), "contoso.com")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "MS=ms12345", records[0].Text)

	verified, err := domains.Verify(context.Background(), "contoso.com")
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	assert.Equal(t, []string{
		"POST /domains",
		"GET /domains/contoso.com/verificationDnsRecords",
		"POST /domains/contoso.com/verify",
	}, log.all())
}

// graphDirectory serves a small fixed set of users and their managers.
func graphDirectory(t *testing.T, log *requestLog, managerOf map[string]string) http.HandlerFunc {
	t.Helper()

	users := map[string]map[string]interface{}{
		"alice@contoso.com": {"id": "u-alice", "userPrincipalName": "alice@contoso.com"},
		"bob@contoso.com":   {"id": "u-bob", "userPrincipalName": "bob@contoso.com"},
		"carol@contoso.com": {"id": "u-carol", "userPrincipalName": "carol@contoso.com"},
	}
	byID := map[string]map[string]interface{}{}

	for _, user := range users {
		byID[user["id"].(string)] = user
	}

	lookup := func(key string) map[string]interface{} {
		if user, ok := users[key]; ok {
			return user
		}

		return byID[key]
	}

	notFound := map[string]interface{}{"error": map[string]interface{}{"code": "Request_ResourceNotFound", "message": "not found"}}

	return func(writer http.ResponseWriter, request *http.Request) {
		log.add(request)

		parts := strings.Split(strings.TrimPrefix(request.URL.Path, "/users"), "/")

		switch {
		case request.Method == http.MethodPost && request.URL.Path == "/users":
			body := readJSON(t, request)
			assert.NotContains(t, body, "manager")
			writeJSON(t, writer, http.StatusCreated, map[string]interface{}{"id": "u-new", "userPrincipalName": body["userPrincipalName"]})
		case len(parts) == 2 && request.Method == http.MethodGet:
			if parts[1] == "u-new" {
				writeJSON(t, writer, http.StatusOK, map[string]interface{}{"id": "u-new"})

				return
			}

			user := lookup(parts[1])
			if user == nil {
				writeJSON(t, writer, http.StatusNotFound, notFound)

				return
			}

			writeJSON(t, writer, http.StatusOK, user)
		case len(parts) == 2 && request.Method == http.MethodPatch:
			writer.WriteHeader(http.StatusNoContent)
		case len(parts) == 3 && parts[2] == "manager":
			manager := lookup(managerOf[parts[1]])
			if manager == nil {
				writeJSON(t, writer, http.StatusNotFound, notFound)

				return
			}

			writeJSON(t, writer, http.StatusOK, manager)
		case len(parts) == 4 && parts[3] == "$ref" && request.Method == http.MethodPut:
			body := readJSON(t, request)
			assert.True(t, strings.HasPrefix(body["@odata.id"].(string), "https://graph.microsoft.com/v1.0/users/u-"))
			writer.WriteHeader(http.StatusNoContent)
		case len(parts) == 4 && parts[3] == "$ref" && request.Method == http.MethodDelete:
			writer.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", request.Method, request.URL.Path)
		}
	}
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestGraphUsersClient(t *testing.T) {
	t.Parallel()

	t.Run("Create assigns the manager", func(t *testing.T) {
		t.Parallel()

		log := &requestLog{}
		users := NewGraphUsersClient(newTestHTTPClient(t, graphDirectory(t, log, nil)))

		user, err := users.Create(context.Background(), &msapi.GraphUserInput{
			DisplayName:       "New",
			UserPrincipalName: "new@contoso.com",
			Manager:           "bob@contoso.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "u-new", user.ID)
		assert.Equal(t, []string{
			"POST /users",
			"GET /users/u-new",
			"GET /users/bob@contoso.com",
			"PUT /users/u-new/manager/$ref",
		}, log.all())
	})

	t.Run("Create with an unknown manager", func(t *testing.T) {
		t.Parallel()

		users := NewGraphUsersClient(newTestHTTPClient(t, graphDirectory(t, &requestLog{}, nil)))

		_, err := users.Create(context.Background(), &msapi.GraphUserInput{
			UserPrincipalName: "new@contoso.com",
			Manager:           "nobody@contoso.com",
		})
		require.ErrorIs(t, err, constants.ErrManagerNotFound)
		assert.True(t, msapi.IsNotFound(err))
	})

	t.Run("Update keeps an unchanged manager", func(t *testing.T) {
		t.Parallel()

		log := &requestLog{}
		users := NewGraphUsersClient(newTestHTTPClient(t, graphDirectory(t, log, map[string]string{"u-alice": "bob@contoso.com"})))

		_, err := users.Update(context.Background(), "u-alice", &msapi.GraphUserInput{
			JobTitle: "Engineer",
			Manager:  "bob@contoso.com",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{
			"GET /users/u-alice/manager",
			"PATCH /users/u-alice",
			"GET /users/u-alice",
		}, log.all())
	})

	t.Run("Update changes a different manager", func(t *testing.T) {
		t.Parallel()

		log := &requestLog{}
		users := NewGraphUsersClient(newTestHTTPClient(t, graphDirectory(t, log, map[string]string{"u-alice": "bob@contoso.com"})))

		_, err := users.Update(context.Background(), "u-alice", &msapi.GraphUserInput{Manager: "carol@contoso.com"})
		require.NoError(t, err)
		assert.Contains(t, log.all(), "PUT /users/u-alice/manager/$ref")
	})

	t.Run("Update removes the manager", func(t *testing.T) {
		t.Parallel()

		log := &requestLog{}
		users := NewGraphUsersClient(newTestHTTPClient(t, graphDirectory(t, log, map[string]string{"u-alice": "bob@contoso.com"})))

		_, err := users.Update(context.Background(), "u-alice", &msapi.GraphUserInput{RemoveManager: true})
		require.NoError(t, err)
		assert.Contains(t, log.all(), "DELETE /users/u-alice/manager/$ref")
	})

	t.Run("Update without a manager to remove", func(t *testing.T) {
		t.Parallel()

		log := &requestLog{}
		users := NewGraphUsersClient(newTestHTTPClient(t, graphDirectory(t, log, nil)))

		_, err := users.Update(context.Background(), "u-alice", &msapi.GraphUserInput{RemoveManager: true})
		require.NoError(t, err)
		assert.NotContains(t, log.all(), "DELETE /users/u-alice/manager/$ref")
	})

	t.Run("Manager is nil when none is set", func(t *testing.T) {
		t.Parallel()

		users := NewGraphUsersClient(newTestHTTPClient(t, graphDirectory(t, &requestLog{}, nil)))

		manager, err := users.Manager(context.Background(), "u-alice")
		require.NoError(t, err)
		assert.Nil(t, manager)
	})

	t.Run("AssignManager with an unknown user", func(t *testing.T) {
		t.Parallel()

		users := NewGraphUsersClient(newTestHTTPClient(t, graphDirectory(t, &requestLog{}, nil)))

		err := users.AssignManager(context.Background(), "ghost@contoso.com", "bob@contoso.com")
		require.ErrorIs(t, err, constants.ErrUserNotFound)
	})
}

func TestGraphLicensesClient(t *testing.T) {
	t.Parallel()

	httpClient := newTestHTTPClient(t, func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Path {
		case "/users":
			assert.Equal(t, "id,userPrincipalName,assignedLicenses", request.URL.Query().Get("$select"))
			writeJSON(t, writer, http.StatusOK, odata(map[string]interface{}{
				"id":                "u-1",
				"userPrincipalName": "a@contoso.com",
				"assignedLicenses":  []interface{}{map[string]interface{}{"skuId": "sku-1", "disabledPlans": []string{}}},
			}))
		case "/subscribedSkus":
			writeJSON(t, writer, http.StatusOK, odata(map[string]interface{}{
				"skuId":         "sku-1",
				"skuPartNumber": "SPB",
				"consumedUnits": 4,
				"prepaidUnits":  map[string]interface{}{"enabled": 10},
			}))
		default:
			t.Errorf("unexpected path %s", request.URL.Path)
		}
	})

	licenses := NewGraphLicensesClient(httpClient)

	users, err := licenses.UserLicenses(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "sku-1", users[0].AssignedLicenses[0].SkuID)

	skus, err := licenses.SubscribedSkus(context.Background())
	require.NoError(t, err)
	require.Len(t, skus, 1)
	assert.Equal(t, 10, skus[0].PrepaidUnits.Enabled)
}

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestApplicationsClient_Permissions(t *testing.T) {
	t.Parallel()

	const graphAppID = "00000003-0000-0000-c000-000000000000"

	application := map[string]interface{}{
		"id":          "obj-1",
		"appId":       "app-1",
		"displayName": "Portal",
		"requiredResourceAccess": []interface{}{
			map[string]interface{}{
				"resourceAppId": graphAppID,
				"resourceAccess": []interface{}{
					map[string]interface{}{"id": "role-1", "type": "Role"},
					map[string]interface{}{"id": "scope-1", "type": "Scope"},
					map[string]interface{}{"id": "scope-unknown", "type": "Scope"},
				},
			},
		},
	}

	t.Run("resolves names through the service principal", func(t *testing.T) {
		t.Parallel()

		httpClient := newTestHTTPClient(t, func(writer http.ResponseWriter, request *http.Request) {
			switch request.URL.Path {
			case "/applications(appId='app-1')":
				writeJSON(t, writer, http.StatusOK, application)
			case "/servicePrincipals":
				assert.Equal(t, "appId eq '"+graphAppID+"'", request.URL.Query().Get("$filter"))
				assert.Equal(t, "id,displayName,appRoles,oauth2PermissionScopes", request.URL.Query().Get("$select"))
				writeJSON(t, writer, http.StatusOK, odata(map[string]interface{}{
					"id":          "sp-graph",
					"displayName": "Microsoft Graph",
					"appRoles": []interface{}{
						map[string]interface{}{"id": "role-1", "value": "Directory.Read.All"},
					},
					"oauth2PermissionScopes": []interface{}{
						map[string]interface{}{"id": "scope-1", "value": "User.Read"},
					},
				}))
			default:
				t.Errorf("unexpected path %s", request.URL.Path)
			}
		})

		groups, err := NewApplicationsClient(httpClient).Permissions(context.Background(), "app-1")
		require.NoError(t, err)
		require.Len(t, groups, 1)
		assert.Equal(t, "Microsoft Graph", groups[0].Role)
		assert.Equal(t, []msapi.AppPermission{
			{Name: "Directory.Read.All", Type: msapi.PermissionTypeApplication},
			{Name: "User.Read", Type: msapi.PermissionTypeDelegated},
			{Name: "scope-unknown", Type: msapi.PermissionTypeDelegated},
		}, groups[0].Permissions)
	})

	t.Run("fails when a service principal is missing", func(t *testing.T) {
		t.Parallel()

		httpClient := newTestHTTPClient(t, func(writer http.ResponseWriter, request *http.Request) {
			if request.URL.Path == "/servicePrincipals" {
				writeJSON(t, writer, http.StatusOK, odata())

				return
			}

			writeJSON(t, writer, http.StatusOK, application)
		})

		_, err := NewApplicationsClient(httpClient).Permissions(context.Background(), "app-1")
		require.ErrorIs(t, err, constants.ErrServicePrincipalAbsent)
	})
}

func TestEnterpriseApplicationsClient(t *testing.T) {
	t.Parallel()

	httpClient := newTestHTTPClient(t, func(writer http.ResponseWriter, request *http.Request) {
		switch {
		case request.URL.Path == "/servicePrincipals" && request.URL.Query().Get("$filter") == "appId eq 'known'":
			writeJSON(t, writer, http.StatusOK, odata(map[string]interface{}{"id": "sp-1", "appId": "known"}))
		case request.URL.Path == "/servicePrincipals":
			writeJSON(t, writer, http.StatusOK, odata())
		case request.URL.Path == "/servicePrincipals/sp-1/appRoleAssignments" && request.Method == http.MethodPost:
			assert.Equal(t, map[string]interface{}{
				"principalId": "sp-1",
				"resourceId":  "sp-graph",
				"appRoleId":   "role-1",
			}, readJSON(t, request))
			writeJSON(t, writer, http.StatusCreated, map[string]interface{}{
				"id": "assignment-1", "principalId": "sp-1", "resourceId": "sp-graph", "appRoleId": "role-1",
			})
		case request.URL.Path == "/servicePrincipals/sp-1/appRoleAssignments":
			writeJSON(t, writer, http.StatusOK, map[string]interface{}{})
		default:
			t.Errorf("unexpected request %s %s", request.Method, request.URL.Path)
		}
	})

	enterprise := NewEnterpriseApplicationsClient(httpClient)

	principal, err := enterprise.GetByAppID(context.Background(), "known")
	require.NoError(t, err)
	require.NotNil(t, principal)
	assert.Equal(t, "sp-1", principal.ID)

	missing, err := enterprise.GetByAppID(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assignments, err := enterprise.AppRoleAssignments(context.Background(), "sp-1")
	require.NoError(t, err)
	assert.Empty(t, assignments)
	assert.NotNil(t, assignments)

	granted, err := enterprise.GrantAppRoleAssignment(context.Background(), "sp-1", "sp-graph", "role-1")
	require.NoError(t, err)
	assert.Equal(t, "assignment-1", granted.ID)
}

func TestGraphUsersClient_Get(t *testing.T) {
	t.Parallel()

	tests := []TestGetOperation[msapi.GraphUser]{
		{
			Name:         "by principal name",
			ID:           "alice@contoso.com",
			ExpectedPath: "/users/alice@contoso.com",
			StatusCode:   http.StatusOK,
			Response:     map[string]interface{}{"id": "u-alice"},
		},
		{
			Name:         "graph error",
			ID:           "ghost",
			ExpectedPath: "/users/ghost",
			StatusCode:   http.StatusNotFound,
			Response:     map[string]interface{}{"error": map[string]interface{}{"code": "Request_ResourceNotFound", "message": "gone"}},
			WantErr:      true,
			ErrMessage:   "Request_ResourceNotFound: gone",
		},
	}

	RunGetTests(t, tests, func(httpClient *internalhttp.Client) func(context.Context, string) (*msapi.GraphUser, error) {
		return NewGraphUsersClient(httpClient).Get
	})
}
