package cli

import "errors"

var errDoctorIssuesFound = errors.New("doctor found errors")
