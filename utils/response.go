package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Code is the application status carried in the JSON envelope. The first three
// digits repeat the HTTP status, the rest name the cause.
type Code int

const (
	CodeOK Code = 0

	CodeBadPayload   Code = 40001
	CodeInvalidGroup Code = 40002
	CodeLoginNeeded  Code = 40101
	CodeAdminOnly    Code = 40301
	CodeNoSuchGroup  Code = 40401
	CodeNoSuchUser   Code = 40402
	CodeRateLimited  Code = 42901

	CodeCacheClear  Code = 50001
	CodeStats       Code = 50002
	CodeGroupCreate Code = 50003
	CodeDelete      Code = 50004
)

// Envelope is the body of every admin API response.
type Envelope struct {
	Code    Code        `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes an envelope with the given HTTP status.
func Respond(ctx *gin.Context, status int, code Code, message string, data interface{}) {
	ctx.JSON(status, Envelope{Code: code, Message: message, Data: data})
}

// Success writes 200 with CodeOK.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, CodeOK, "success", data)
}

// Created writes 201 with CodeOK.
func Created(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusCreated, CodeOK, "created", data)
}

// Error writes an error envelope and stops the handler chain.
func Error(ctx *gin.Context, status int, code Code, message string) {
	Respond(ctx, status, code, message, nil)
	ctx.Abort()
}
