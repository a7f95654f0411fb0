package create_turn

// Request модель запроса на постановку в очередь
type Request struct {
	CustomerName string // Имя клиента
	MobileNumber string // Номер телефона (идентификатор клиента)
	ServiceType  string // Ключ услуги из фиксированного перечня
}
