// Package configs manages filestore configuration.
//
// Configuration is stored as TOML and names the secret file and the RSA key
// pair protecting it. The storage package takes these values as plain data
// and has no knowledge of where they came from.
//
// # Default Locations
//
//   - Keys: $XDG_DATA_HOME/filestore/keys/{public,private}.pem
//   - Secret: $XDG_DATA_HOME/filestore/pw.txt
//   - Config: $XDG_CONFIG_HOME/filestore/config.toml, or $FILESTORE_CONFIG
//
// # File Format
//
//	[storage]
//	path = "/srv/app/config/pw.txt"
//
//	[keys]
//	public  = "/srv/app/config/keys/public.pem"
//	private = "/srv/app/config/keys/private.pem"
//
// Flat public_key/private_key entries are accepted in place of the [keys]
// table.
package configs
