package database_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Vecno-Foundation/vecnod/infrastructure/db/database"
)

func TestTransactionCommit(t *testing.T) {
	testForAllDatabaseTypes(t, "TestTransactionCommit", testTransactionCommit)
}

func testTransactionCommit(t *testing.T, db database.Database, testName string) {
	// Put a value into the database
	key1 := database.MakeBucket(nil).Key([]byte("key1"))
	value1 := []byte("value1")
	err := db.Put(key1, value1)
	if err != nil {
		t.Fatalf("%s: Put "+
			"unexpectedly failed: %s", testName, err)
	}

	// Begin a new transaction
	dbTx, err := db.Begin()
	if err != nil {
		t.Fatalf("%s: Begin "+
			"unexpectedly failed: %s", testName, err)
	}
	defer func() {
		err := dbTx.RollbackUnlessClosed()
		if err != nil {
			t.Fatalf("%s: RollbackUnlessClosed "+
				"unexpectedly failed: %s", testName, err)
		}
	}()

	// Make sure that Has returns that the original value exists
	exists, err := dbTx.Has(key1)
	if err != nil {
		t.Fatalf("%s: Has "+
			"unexpectedly failed: %s", testName, err)
	}
	if !exists {
		t.Fatalf("%s: Has "+
			"unexpectedly returned that the value does not exist", testName)
	}

	// Get the existing value and make sure it's equal to the original
	existingValue, err := dbTx.Get(key1)
	if err != nil {
		t.Fatalf("%s: Get "+
			"unexpectedly failed: %s", testName, err)
	}
	if !bytes.Equal(existingValue, value1) {
		t.Fatalf("%s: Get "+
			"returned wrong value. Want: %s, got: %s",
			testName, string(value1), string(existingValue))
	}

	// Delete the existing value
	err = dbTx.Delete(key1)
	if err != nil {
		t.Fatalf("%s: Delete "+
			"unexpectedly failed: %s", testName, err)
	}

	// Put a new value
	key2 := database.MakeBucket(nil).Key([]byte("key2"))
	value2 := []byte("value2")
	err = dbTx.Put(key2, value2)
	if err != nil {
		t.Fatalf("%s: Put "+
			"unexpectedly failed: %s", testName, err)
	}

	// Commit the transaction
	err = dbTx.Commit()
	if err != nil {
		t.Fatalf("%s: Commit "+
			"unexpectedly failed: %s", testName, err)
	}

	// Make sure that the database reflects the changes
	exists, err = db.Has(key1)
	if err != nil {
		t.Fatalf("%s: Has "+
			"unexpectedly failed: %s", testName, err)
	}
	if exists {
		t.Fatalf("%s: Has "+
			"unexpectedly returned that the deleted value exists", testName)
	}
	returnedValue, err := db.Get(key2)
	if err != nil {
		t.Fatalf("%s: Get "+
			"unexpectedly failed: %s", testName, err)
	}
	if !bytes.Equal(returnedValue, value2) {
		t.Fatalf("%s: Get "+
			"returned wrong value. Want: %s, got: %s",
			testName, string(value2), string(returnedValue))
	}
}

func TestTransactionRollback(t *testing.T) {
	testForAllDatabaseTypes(t, "TestTransactionRollback", testTransactionRollback)
}

func testTransactionRollback(t *testing.T, db database.Database, testName string) {
	dbTx, err := db.Begin()
	if err != nil {
		t.Fatalf("%s: Begin "+
			"unexpectedly failed: %s", testName, err)
	}

	key := database.MakeBucket(nil).Key([]byte("key"))
	err = dbTx.Put(key, []byte("value"))
	if err != nil {
		t.Fatalf("%s: Put "+
			"unexpectedly failed: %s", testName, err)
	}

	err = dbTx.Rollback()
	if err != nil {
		t.Fatalf("%s: Rollback "+
			"unexpectedly failed: %s", testName, err)
	}

	exists, err := db.Has(key)
	if err != nil {
		t.Fatalf("%s: Has "+
			"unexpectedly failed: %s", testName, err)
	}
	if exists {
		t.Fatalf("%s: Has "+
			"unexpectedly returned that a rolled back value exists", testName)
	}

	// RollbackUnlessClosed on a closed transaction is a no-op
	err = dbTx.RollbackUnlessClosed()
	if err != nil {
		t.Fatalf("%s: RollbackUnlessClosed "+
			"unexpectedly failed: %s", testName, err)
	}
}

func TestTransactionCloseErrors(t *testing.T) {
	testForAllDatabaseTypes(t, "TestTransactionCloseErrors", testTransactionCloseErrors)
}

func testTransactionCloseErrors(t *testing.T, db database.Database, testName string) {
	tests := []struct {
		name     string
		function func(dbTx database.Transaction) error
	}{
		{
			name: "Put",
			function: func(dbTx database.Transaction) error {
				return dbTx.Put(database.MakeBucket(nil).Key([]byte("key")), []byte("value"))
			},
		},
		{
			name: "Get",
			function: func(dbTx database.Transaction) error {
				_, err := dbTx.Get(database.MakeBucket(nil).Key([]byte("key")))
				return err
			},
		},
		{
			name: "Has",
			function: func(dbTx database.Transaction) error {
				_, err := dbTx.Has(database.MakeBucket(nil).Key([]byte("key")))
				return err
			},
		},
		{
			name: "Delete",
			function: func(dbTx database.Transaction) error {
				return dbTx.Delete(database.MakeBucket(nil).Key([]byte("key")))
			},
		},
		{
			name: "Cursor",
			function: func(dbTx database.Transaction) error {
				_, err := dbTx.Cursor(database.MakeBucket([]byte("bucket")))
				return err
			},
		},
		{
			name: "Commit",
			function: func(dbTx database.Transaction) error {
				return dbTx.Commit()
			},
		},
		{
			name: "Rollback",
			function: func(dbTx database.Transaction) error {
				return dbTx.Rollback()
			},
		},
	}

	for _, test := range tests {
		dbTx, err := db.Begin()
		if err != nil {
			t.Fatalf("%s: Begin "+
				"unexpectedly failed: %s", testName, err)
		}
		err = dbTx.Rollback()
		if err != nil {
			t.Fatalf("%s: Rollback "+
				"unexpectedly failed: %s", testName, err)
		}

		err = test.function(dbTx)
		if err == nil {
			t.Fatalf("%s: %s "+
				"unexpectedly succeeded", testName, test.name)
		}
		if !strings.Contains(err.Error(), "closed transaction") {
			t.Fatalf("%s: %s "+
				"returned wrong error: %s", testName, test.name, err)
		}
	}
}
