package idgen

import (
	"errors"
	"fmt"
	mrand "math/rand"
	"strings"

	"github.com/sqids/sqids-go"
)

// DefaultAlphabet 订单号字母表，去掉了易混淆的 0/O、1/I
const DefaultAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// ErrInvalidNumber 订单号无法解码
var ErrInvalidNumber = errors.New("invalid order number")

// Encoder 把自增 ID 编码为对外展示的短编号
type Encoder struct {
	sqids *sqids.Sqids
}

// NewEncoder 创建编码器。alphabet 为空时使用 DefaultAlphabet，seed 非空时按种子打乱字母表。
// 订单号按大写解码，字母表统一转为大写；转换后出现重复字符时返回错误。
func NewEncoder(alphabet, seed string, minLength int) (*Encoder, error) {
	alphabet = strings.ToUpper(strings.TrimSpace(alphabet))
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}
	if seed = strings.TrimSpace(seed); seed != "" {
		alphabet = shuffleAlphabet(alphabet, seed)
	}
	if minLength < 0 {
		minLength = 0
	}
	if minLength > 255 {
		minLength = 255
	}
	s, err := sqids.New(sqids.Options{
		Alphabet:  alphabet,
		MinLength: uint8(minLength),
	})
	if err != nil {
		return nil, fmt.Errorf("init sqids: %w", err)
	}
	return &Encoder{sqids: s}, nil
}

// shuffleAlphabet 使用种子确定性地打乱字母表
func shuffleAlphabet(alphabet, seed string) string {
	var seedInt int64
	for i, c := range seed {
		seedInt += int64(c) * int64(i+1)
	}
	r := mrand.New(mrand.NewSource(seedInt))
	chars := []rune(alphabet)
	r.Shuffle(len(chars), func(i, j int) {
		chars[i], chars[j] = chars[j], chars[i]
	})
	return string(chars)
}

// Encode 编码订单 ID
func (e *Encoder) Encode(id uint) (string, error) {
	if id == 0 {
		return "", errors.New("id must be positive")
	}
	return e.sqids.Encode([]uint64{uint64(id)})
}

// Decode 解码订单号；非规范编码同样视为无效
func (e *Encoder) Decode(number string) (uint, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	if number == "" {
		return 0, ErrInvalidNumber
	}
	values := e.sqids.Decode(number)
	if len(values) != 1 || values[0] == 0 {
		return 0, ErrInvalidNumber
	}
	canonical, err := e.sqids.Encode(values)
	if err != nil || canonical != number {
		return 0, ErrInvalidNumber
	}
	return uint(values[0]), nil
}
