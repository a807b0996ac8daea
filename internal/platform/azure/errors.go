package azure

import (
	"errors"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/microsoftgraph/msgraph-sdk-go/models/odataerrors"
)

// Error codes returned by the ARM and storage APIs.
const (
	codeRoleAssignmentExists   = "RoleAssignmentExists"
	codePrincipalNotFound      = "PrincipalNotFound"
	codeContainerAlreadyExists = "ContainerAlreadyExists"
)

// Error codes returned by the Microsoft Graph API.
const (
	graphCodeNotFound     = "Request_ResourceNotFound"
	graphCodeDuplicateKey = "Request_MultipleObjectsWithSameKeyValue"
)

// IsNotFound checks if an error is an ARM response with status 404.
func IsNotFound(err error) bool {
	return hasStatusCode(err, http.StatusNotFound)
}

// IsConflict checks if an error is an ARM response with status 409.
// Conflicts typically mean the resource was created by someone else
// between our read and our write.
func IsConflict(err error) bool {
	return hasStatusCode(err, http.StatusConflict)
}

// IsRoleAssignmentExists checks if a role assignment write failed because
// an equivalent assignment already exists.
func IsRoleAssignmentExists(err error) bool {
	return hasErrorCode(err, codeRoleAssignmentExists)
}

// IsPrincipalNotFound checks if a role assignment write failed because the
// directory has not propagated the principal yet. These errors are
// retryable.
func IsPrincipalNotFound(err error) bool {
	return hasErrorCode(err, codePrincipalNotFound)
}

// IsContainerAlreadyExists checks if a blob container creation failed
// because the container is already there.
func IsContainerAlreadyExists(err error) bool {
	return hasErrorCode(err, codeContainerAlreadyExists)
}

// IsGraphNotFound checks if a Graph request failed because the directory
// object does not exist.
func IsGraphNotFound(err error) bool {
	return hasGraphCode(err, graphCodeNotFound)
}

// IsGraphDuplicate checks if a Graph write failed because an object with
// the same key already exists.
func IsGraphDuplicate(err error) bool {
	return hasGraphCode(err, graphCodeDuplicateKey)
}

// hasStatusCode checks if the error is an ARM response error with one of
// the given HTTP status codes.
func hasStatusCode(err error, codes ...int) bool {
	if err == nil {
		return false
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		for _, code := range codes {
			if respErr.StatusCode == code {
				return true
			}
		}
	}
	return false
}

// hasErrorCode checks if the error is an ARM response error with one of
// the given service error codes.
func hasErrorCode(err error, codes ...string) bool {
	if err == nil {
		return false
	}

	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		for _, code := range codes {
			if respErr.ErrorCode == code {
				return true
			}
		}
	}
	return false
}

// hasGraphCode checks if the error is a Graph OData error with one of the
// given codes.
func hasGraphCode(err error, codes ...string) bool {
	if err == nil {
		return false
	}

	var odataErr *odataerrors.ODataError
	if !errors.As(err, &odataErr) {
		return false
	}
	mainErr := odataErr.GetErrorEscaped()
	if mainErr == nil || mainErr.GetCode() == nil {
		return false
	}
	for _, code := range codes {
		if *mainErr.GetCode() == code {
			return true
		}
	}
	return false
}
