package grpc

// proto.go defines the gRPC server interface derived from
// ledgerline/credit/v1/credit.proto. This file serves as a stand-in for
// buf-generated code. Once `buf generate` is run, replace this file with the
// import from github.com/ledgerline/credit-engine/api/gen/go/credit/v1.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ---------------------------------------------------------------------------
// Message types (mirroring credit.v1 proto messages)
// ---------------------------------------------------------------------------

type SubmitApplicationRequest struct {
	BorrowerID          string `json:"borrower_id"`
	RequestedAmount     string `json:"requested_amount"`
	CollateralValue     string `json:"collateral_value"`
	HasCollateral       bool   `json:"has_collateral"`
	Purpose             string `json:"purpose"`
	TermMonths          int    `json:"term_months"`
	InterestRatePercent string `json:"interest_rate_percent"`
	InterestType        string `json:"interest_type"`
	GracePeriodDays     int    `json:"grace_period_days"`
	PenaltyRatePercent  string `json:"penalty_rate_percent"`
	PenaltyFlat         string `json:"penalty_flat"`
}

type ApplicationReply struct {
	ID                string `json:"id"`
	BorrowerID        string `json:"borrower_id"`
	Status            string `json:"status"`
	CreditScore       int    `json:"credit_score"`
	EligibilityStatus string `json:"eligibility_status"`
	EligibilityScore  int    `json:"eligibility_score"`
	RiskTier          string `json:"risk_tier"`
	Recommendation    string `json:"recommendation"`
}

type ComputeEligibilityRequest struct {
	ApplicationID string `json:"application_id"`
}

type DisburseLoanRequest struct {
	ApplicationID      string `json:"application_id"`
	DisbursementMethod string `json:"disbursement_method"`
	Reference          string `json:"reference"`
}

type LoanReply struct {
	ID                 string `json:"id"`
	ApplicationID      string `json:"application_id"`
	BorrowerID         string `json:"borrower_id"`
	Principal          string `json:"principal"`
	MonthlyPayment     string `json:"monthly_payment"`
	TotalAmount        string `json:"total_amount"`
	OutstandingBalance string `json:"outstanding_balance"`
	Status             string `json:"status"`
	ReceiptNumber      string `json:"receipt_number"`
}

type RecordPaymentRequest struct {
	LoanID      string `json:"loan_id"`
	Amount      string `json:"amount"`
	PaymentDate string `json:"payment_date"`
}

type PaymentReply struct {
	PaymentID          string `json:"payment_id"`
	LoanID             string `json:"loan_id"`
	LateFee            string `json:"late_fee"`
	DaysLate           int    `json:"days_late"`
	Status             string `json:"status"`
	ReceiptNumber      string `json:"receipt_number"`
	OutstandingBalance string `json:"outstanding_balance"`
	LoanStatus         string `json:"loan_status"`
}

type RefreshCreditScoreRequest struct {
	BorrowerID string `json:"borrower_id"`
}

type CreditScoreReply struct {
	BorrowerID string `json:"borrower_id"`
	Score      int    `json:"score"`
}

type GetCreditLimitRequest struct {
	BorrowerID string `json:"borrower_id"`
}

type CreditLimitReply struct {
	BorrowerID      string `json:"borrower_id"`
	MaxCredit       string `json:"max_credit"`
	AvailableCredit string `json:"available_credit"`
}

type RunDelinquencySweepRequest struct{}

type SweepReply struct {
	LoansScanned      int `json:"loans_scanned"`
	PenaltiesApplied  int `json:"penalties_applied"`
	NotificationsSent int `json:"notifications_sent"`
	CasesOpened       int `json:"cases_opened"`
	LoansDefaulted    int `json:"loans_defaulted"`
	Errors            int `json:"errors"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

// CreditServiceServer is the server API for CreditService.
// It mirrors the proto-generated interface from credit.v1.CreditService.
type CreditServiceServer interface {
	SubmitApplication(context.Context, *SubmitApplicationRequest) (*ApplicationReply, error)
	ComputeEligibility(context.Context, *ComputeEligibilityRequest) (*ApplicationReply, error)
	DisburseLoan(context.Context, *DisburseLoanRequest) (*LoanReply, error)
	RecordPayment(context.Context, *RecordPaymentRequest) (*PaymentReply, error)
	RefreshCreditScore(context.Context, *RefreshCreditScoreRequest) (*CreditScoreReply, error)
	GetCreditLimit(context.Context, *GetCreditLimitRequest) (*CreditLimitReply, error)
	RunDelinquencySweep(context.Context, *RunDelinquencySweepRequest) (*SweepReply, error)
	mustEmbedUnimplementedCreditServiceServer()
}

// UnimplementedCreditServiceServer provides forward-compatible default implementations.
type UnimplementedCreditServiceServer struct{}

func (UnimplementedCreditServiceServer) SubmitApplication(context.Context, *SubmitApplicationRequest) (*ApplicationReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method SubmitApplication not implemented")
}
func (UnimplementedCreditServiceServer) ComputeEligibility(context.Context, *ComputeEligibilityRequest) (*ApplicationReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ComputeEligibility not implemented")
}
func (UnimplementedCreditServiceServer) DisburseLoan(context.Context, *DisburseLoanRequest) (*LoanReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method DisburseLoan not implemented")
}
func (UnimplementedCreditServiceServer) RecordPayment(context.Context, *RecordPaymentRequest) (*PaymentReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RecordPayment not implemented")
}
func (UnimplementedCreditServiceServer) RefreshCreditScore(context.Context, *RefreshCreditScoreRequest) (*CreditScoreReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RefreshCreditScore not implemented")
}
func (UnimplementedCreditServiceServer) GetCreditLimit(context.Context, *GetCreditLimitRequest) (*CreditLimitReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetCreditLimit not implemented")
}
func (UnimplementedCreditServiceServer) RunDelinquencySweep(context.Context, *RunDelinquencySweepRequest) (*SweepReply, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunDelinquencySweep not implemented")
}
func (UnimplementedCreditServiceServer) mustEmbedUnimplementedCreditServiceServer() {}

// RegisterCreditServiceServer registers the CreditServiceServer with the gRPC server.
func RegisterCreditServiceServer(s *grpclib.Server, srv CreditServiceServer) {
	s.RegisterService(&_CreditService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _CreditService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "ledgerline.credit.v1.CreditService",
	HandlerType: (*CreditServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "SubmitApplication", Handler: _CreditService_SubmitApplication_Handler},     //nolint:revive // gRPC handler registration
		{MethodName: "ComputeEligibility", Handler: _CreditService_ComputeEligibility_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "DisburseLoan", Handler: _CreditService_DisburseLoan_Handler},               //nolint:revive // gRPC handler registration
		{MethodName: "RecordPayment", Handler: _CreditService_RecordPayment_Handler},             //nolint:revive // gRPC handler registration
		{MethodName: "RefreshCreditScore", Handler: _CreditService_RefreshCreditScore_Handler},   //nolint:revive // gRPC handler registration
		{MethodName: "GetCreditLimit", Handler: _CreditService_GetCreditLimit_Handler},           //nolint:revive // gRPC handler registration
		{MethodName: "RunDelinquencySweep", Handler: _CreditService_RunDelinquencySweep_Handler}, //nolint:revive // gRPC handler registration
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_SubmitApplication_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(SubmitApplicationRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).SubmitApplication(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ledgerline.credit.v1.CreditService/SubmitApplication",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).SubmitApplication(ctx, req.(*SubmitApplicationRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_ComputeEligibility_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(ComputeEligibilityRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).ComputeEligibility(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ledgerline.credit.v1.CreditService/ComputeEligibility",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).ComputeEligibility(ctx, req.(*ComputeEligibilityRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_DisburseLoan_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(DisburseLoanRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).DisburseLoan(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ledgerline.credit.v1.CreditService/DisburseLoan",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).DisburseLoan(ctx, req.(*DisburseLoanRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_RecordPayment_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RecordPaymentRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).RecordPayment(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ledgerline.credit.v1.CreditService/RecordPayment",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).RecordPayment(ctx, req.(*RecordPaymentRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_RefreshCreditScore_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RefreshCreditScoreRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).RefreshCreditScore(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ledgerline.credit.v1.CreditService/RefreshCreditScore",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).RefreshCreditScore(ctx, req.(*RefreshCreditScoreRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_GetCreditLimit_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetCreditLimitRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).GetCreditLimit(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ledgerline.credit.v1.CreditService/GetCreditLimit",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).GetCreditLimit(ctx, req.(*GetCreditLimitRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive,errcheck // gRPC handler registration
func _CreditService_RunDelinquencySweep_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpclib.UnaryServerInterceptor) (interface{}, error) {
	in := new(RunDelinquencySweepRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CreditServiceServer).RunDelinquencySweep(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ledgerline.credit.v1.CreditService/RunDelinquencySweep",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(CreditServiceServer).RunDelinquencySweep(ctx, req.(*RunDelinquencySweepRequest))
	}
	return interceptor(ctx, in, info, handler)
}
