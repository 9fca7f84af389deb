package security

import (
	"os"
	"runtime"
)

// CurrentUser возвращает имя учетной записи ОС, под которой идет процесс.
// При Windows authentication именно эта учетка уходит на SQL Server, так
// что имя попадает в диагностику подключения. На Windows возвращается
// форма DOMAIN\user, если домен известен.
func CurrentUser() string {
	if user := os.Getenv("USERNAME"); user != "" {
		if domain := os.Getenv("USERDOMAIN"); domain != "" {
			return domain + "\\" + user
		}
		return user
	}
	if user := os.Getenv("USER"); user != "" {
		return user
	}
	return "unknown"
}

// IsAdmin проверяет, запущена ли программа с административными правами.
// Используется только для предупреждения при включении unsafe режима.
//
// Unix: effective UID == 0. Windows: попытка открыть защищенный системный
// ресурс PHYSICALDRIVE0, доступный только администраторам.
func IsAdmin() bool {
	if runtime.GOOS == "windows" {
		return isWindowsAdmin()
	}
	return os.Geteuid() == 0
}

func isWindowsAdmin() bool {
	file, err := os.Open("\\\\.\\PHYSICALDRIVE0")
	if err != nil {
		return false
	}
	file.Close()
	return true
}
