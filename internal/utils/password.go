package utils

import (
	"math/rand"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword 生成密码哈希
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword 校验明文密码与哈希是否匹配
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GetRandomAvatar 从 15 张预置头像中随机选择一张作为默认头像
func GetRandomAvatar() string {
	return strconv.Itoa(rand.Intn(15)+1) + ".png"
}
