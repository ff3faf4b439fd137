package commands

const (
	_etc = "/usr/local/etc/places2sheets"

	DEFAULT_CREDENTIALS = _etc + "/service-account.json"
)
