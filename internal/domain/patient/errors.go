package patient

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrCPFTaken        = errors.New("patient with this CPF already exists")
)
