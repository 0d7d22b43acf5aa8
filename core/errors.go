package core

import "errors"

// DomainError 是领域层的统一错误类型。
//
// 设计原则：
//   - 所有领域层错误都使用此类型
//   - 提供错误代码（Code）和消息（Message）
//   - 支持错误检查函数（IsXXX）
//
// 使用场景：
//   - dataset 错误：DATA_INTEGRITY（评分表缺失/损坏）、INVALID_INPUT（切分比例非法）
//   - model 错误：NO_PROFILE（内容模型要求用户至少有一条评分）
//   - store 错误：NOT_FOUND, NOT_SUPPORTED
type DomainError struct {
	Code    string // 错误代码（如 "NOT_FOUND", "NO_PROFILE"）
	Message string // 错误消息
	Module  string // 模块名称（如 "dataset", "model", "store"）
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError 创建新的领域错误
func NewDomainError(module, code, message string) *DomainError {
	return &DomainError{
		Module:  module,
		Code:    code,
		Message: message,
	}
}

// GetDomainError 获取 DomainError（支持 wrap 链），如果不是则返回 nil
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// 错误代码常量
const (
	ErrorCodeNotFound      = "NOT_FOUND"       // 资源不存在
	ErrorCodeNotSupported  = "NOT_SUPPORTED"   // 操作不支持
	ErrorCodeInvalidInput  = "INVALID_INPUT"   // 输入无效（配置/参数）
	ErrorCodeDataIntegrity = "DATA_INTEGRITY"  // 评分表数据完整性失败，不做修复
	ErrorCodeNoProfile     = "NO_PROFILE"      // 用户没有任何评分，无法构建内容画像
	ErrorCodeInternalError = "INTERNAL_ERROR"  // 内部错误
)

// 模块名称常量
const (
	ModuleDataset = "dataset" // 评分表模块
	ModuleModel   = "model"   // 模型模块
	ModuleEval    = "eval"    // 评估模块
	ModuleStore   = "store"   // 存储模块
	ModuleService = "service" // 服务模块
)

func hasCode(err error, code string) bool {
	if domainErr := GetDomainError(err); domainErr != nil {
		return domainErr.Code == code
	}
	return false
}

// IsNotFound 检查错误是否为 NOT_FOUND
func IsNotFound(err error) bool { return hasCode(err, ErrorCodeNotFound) }

// IsNotSupported 检查错误是否为 NOT_SUPPORTED
func IsNotSupported(err error) bool { return hasCode(err, ErrorCodeNotSupported) }

// IsInvalidInput 检查错误是否为 INVALID_INPUT
func IsInvalidInput(err error) bool { return hasCode(err, ErrorCodeInvalidInput) }

// IsDataIntegrity 检查错误是否为 DATA_INTEGRITY
func IsDataIntegrity(err error) bool { return hasCode(err, ErrorCodeDataIntegrity) }

// IsNoProfile 检查错误是否为 NO_PROFILE
func IsNoProfile(err error) bool { return hasCode(err, ErrorCodeNoProfile) }
