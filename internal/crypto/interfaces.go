package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher отвечает за серверное хеширование паролей.
// Он не знает ничего о сети, базе данных или пользователях.
// Его единственная задача: превратить пароль в argon2id-хеш при регистрации
// и проверить пароль при логине.
//
// Формат хеша (PHC string):
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt-base64>$<digest-base64>
type PasswordHasher interface {
	// Hash генерирует случайную соль (16 байт / 128 бит), выводит argon2id-хеш
	// пароля и возвращает его в PHC-формате вместе с параметрами.
	// Соль не является секретом: она хранится внутри самой строки хеша.
	Hash(password string) (string, error)

	// Verify сравнивает пароль с PHC-хешем из базы. Параметры и соль
	// извлекаются из строки, сравнение выполняется за константное время.
	Verify(password, encoded string) (bool, error)
}
