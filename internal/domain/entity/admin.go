package entity

// Admin credencial de administrador.
// Password se guarda tal cual llega (texto plano); es una debilidad conocida y se conserva
// para no romper la compatibilidad de los datos almacenados.
type Admin struct {
	ID       string
	Username string
	Password string
}
