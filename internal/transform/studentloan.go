package transform

import (
	"fmt"

	"github.com/rgehrsitz/takehome/internal/domain"
)

// EnableStudentLoan opts into student loan repayments under a plan.
type EnableStudentLoan struct {
	Plan domain.StudentLoanPlan
}

func (esl *EnableStudentLoan) Name() string {
	return "enable_student_loan"
}

func (esl *EnableStudentLoan) Description() string {
	return fmt.Sprintf("Repay a plan %d student loan", esl.Plan)
}

func (esl *EnableStudentLoan) Validate(base *domain.ProfileInput) error {
	if !esl.Plan.Valid() {
		return NewTransformError(esl.Name(), "validate", fmt.Sprintf("student loan plan must be 1 or 2, got %d", esl.Plan), nil)
	}
	return requireBase(esl.Name(), base)
}

func (esl *EnableStudentLoan) Apply(base *domain.ProfileInput) (*domain.ProfileInput, error) {
	modified := base.DeepCopy()
	optIn := true
	plan := int(esl.Plan)
	modified.Facts.StudentLoanRepayments = &optIn
	modified.Facts.StudentLoanPlan = &plan
	return modified, nil
}

// DisableStudentLoan stops student loan repayments. The plan is left as is.
type DisableStudentLoan struct{}

func (dsl *DisableStudentLoan) Name() string {
	return "disable_student_loan"
}

func (dsl *DisableStudentLoan) Description() string {
	return "Stop student loan repayments"
}

func (dsl *DisableStudentLoan) Validate(base *domain.ProfileInput) error {
	return requireBase(dsl.Name(), base)
}

func (dsl *DisableStudentLoan) Apply(base *domain.ProfileInput) (*domain.ProfileInput, error) {
	modified := base.DeepCopy()
	optIn := false
	modified.Facts.StudentLoanRepayments = &optIn
	return modified, nil
}
