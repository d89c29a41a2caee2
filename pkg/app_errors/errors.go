package apperrors

import "errors"

// 查無資料
var (
	ErrEventNotFound  = errors.New("event not found")
	ErrTicketNotFound = errors.New("ticket not found")
)

// 授權失敗
var (
	ErrNotEventOrganizer = errors.New("not event organizer")
	ErrNotTicketOwner    = errors.New("not ticket owner")
)

// 狀態錯誤
var (
	ErrInvalidTicketStatus = errors.New("invalid ticket status")
	ErrNoPendingTransfer   = errors.New("no pending transfer")
)

// 政策違規
var (
	ErrEventCancelled      = errors.New("event is cancelled")
	ErrEventPassed         = errors.New("event date has passed")
	ErrNoInventory         = errors.New("no tickets available for this type")
	ErrExceedsMaxPerUser   = errors.New("exceeds max tickets per user")
	ErrPriceBelowMinimum   = errors.New("price below minimum resale price")
	ErrTransferCooldown    = errors.New("transfer cooldown has not elapsed")
	ErrPurchaseRateLimited = errors.New("purchase rate limit exceeded")
	ErrTransferRateLimited = errors.New("transfer rate limit exceeded")
	ErrInvalidSignature    = errors.New("signature verification failed")
	ErrRefundIneligible    = errors.New("ticket is not eligible for refund")
)

// 過期
var (
	ErrTransferExpired        = errors.New("pending transfer has expired")
	ErrTransferWrongRecipient = errors.New("pending transfer is for a different recipient")
)

var ErrInternalServerError = errors.New("internal server error")
