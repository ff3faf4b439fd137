package commands

const (
	_etc = "/usr/local/etc/com.github.openlocal"

	DEFAULT_CREDENTIALS = _etc + "/places2sheets/service-account.json"
)
